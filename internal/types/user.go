package types

import (
	"time"

	"github.com/google/uuid"
)

// Unselected is the stored value for demographic fields the user skipped.
const Unselected = "unselected"

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null;column:username" json:"username"`
	Password  string    `gorm:"not null;column:password" json:"-"`
	Consent   bool      `gorm:"not null;default:false;column:consent" json:"consent"`
	AgeGroup  string    `gorm:"column:age_group;default:unselected" json:"age_group"`
	Gender    string    `gorm:"column:gender;default:unselected" json:"gender"`
	Region    string    `gorm:"column:region;default:unselected" json:"region"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
	return "user"
}
