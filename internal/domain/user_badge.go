package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserBadge tracks one student's progress toward one badge. EarnedAt is stamped
// the first time current_progress reaches the badge threshold and is never
// cleared, even if progress later regresses below it.
type UserBadge struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index:idx_user_badge,unique" json:"user_id"`
	User            *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	BadgeID         uuid.UUID      `gorm:"type:uuid;not null;index:idx_user_badge,unique" json:"badge_id"`
	Badge           *Badge         `gorm:"constraint:OnDelete:CASCADE;foreignKey:BadgeID;references:ID" json:"badge,omitempty"`
	CurrentProgress int            `gorm:"column:current_progress;not null;default:0" json:"current_progress"`
	EarnedAt        *time.Time     `gorm:"column:earned_at" json:"earned_at,omitempty"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (UserBadge) TableName() string { return "user_badge" }
