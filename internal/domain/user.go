package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null;column:email" json:"email"`
	FirstName    string         `gorm:"not null;column:first_name" json:"first_name"`
	LastName     string         `gorm:"not null;column:last_name" json:"last_name"`
	ReadingLevel int            `gorm:"column:reading_level;not null;default:1" json:"reading_level"`
	AvatarURL    string         `gorm:"column:avatar_url" json:"avatar_url,omitempty"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "user" }
