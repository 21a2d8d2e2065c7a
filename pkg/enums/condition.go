package enums

import "fmt"

// Condition grades the physical state of a single card.
type Condition string

const (
	ConditionMint             Condition = "mint"
	ConditionNearMint         Condition = "near_mint"
	ConditionLightlyPlayed    Condition = "lightly_played"
	ConditionModeratelyPlayed Condition = "moderately_played"
	ConditionHeavilyPlayed    Condition = "heavily_played"
	ConditionDamaged          Condition = "damaged"
)

var validConditions = []Condition{
	ConditionMint,
	ConditionNearMint,
	ConditionLightlyPlayed,
	ConditionModeratelyPlayed,
	ConditionHeavilyPlayed,
	ConditionDamaged,
}

// String implements fmt.Stringer.
func (c Condition) String() string {
	return string(c)
}

// IsValid reports whether the value is a known Condition.
func (c Condition) IsValid() bool {
	for _, candidate := range validConditions {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCondition converts raw input into a Condition.
func ParseCondition(value string) (Condition, error) {
	for _, candidate := range validConditions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid condition %q", value)
}
