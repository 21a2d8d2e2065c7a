package models

import (
	"time"

	"github.com/google/uuid"
)

// EmailSubscriber is one newsletter signup.
type EmailSubscriber struct {
	ID                 uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email              string    `gorm:"column:email;not null;uniqueIndex" json:"email"`
	FirstName          *string   `gorm:"column:first_name" json:"first_name,omitempty"`
	SubscriptionSource string    `gorm:"column:subscription_source;not null;default:website_newsletter" json:"subscription_source"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
