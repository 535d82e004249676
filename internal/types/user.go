package types

import (
	"time"

	"github.com/google/uuid"
)

// User rows are provisioned by the external auth provider; this service
// only reads them to personalize prompts.
type User struct {
	ID                uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email             string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Username          string    `gorm:"uniqueIndex;column:username" json:"username"`
	FirstName         string    `gorm:"column:first_name" json:"first_name"`
	LastName          string    `gorm:"column:last_name" json:"last_name"`
	ProfilePictureURL string    `gorm:"column:profile_picture_url" json:"profile_picture_url"`
	CreatedAt         time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt         time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string { return "user" }
