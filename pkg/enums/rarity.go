package enums

import "fmt"

// Rarity grades how scarce a card printing is.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

var validRarities = []Rarity{
	RarityCommon,
	RarityUncommon,
	RarityRare,
	RarityLegendary,
}

// String implements fmt.Stringer.
func (r Rarity) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Rarity.
func (r Rarity) IsValid() bool {
	for _, candidate := range validRarities {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRarity converts raw input into a Rarity.
func ParseRarity(value string) (Rarity, error) {
	for _, candidate := range validRarities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rarity %q", value)
}
