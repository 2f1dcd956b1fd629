package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Attempt is one immutable record of a learner's submission and its verdict.
// Rows are append-only; nothing updates or soft-deletes them.
type Attempt struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_attempt_user_activity" json:"user_id"`
	User       *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ActivityID uuid.UUID      `gorm:"type:uuid;not null;index:idx_attempt_user_activity" json:"activity_id"`
	Activity   *Activity      `gorm:"constraint:OnDelete:CASCADE;foreignKey:ActivityID;references:ID" json:"activity,omitempty"`
	Payload    datatypes.JSON `gorm:"column:payload" json:"payload"`
	IsCorrect  bool           `gorm:"column:is_correct;not null" json:"is_correct"`
	CreatedAt  time.Time      `gorm:"not null;index" json:"created_at"`
}

func (Attempt) TableName() string { return "attempt" }
