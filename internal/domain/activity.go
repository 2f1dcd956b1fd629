package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity kinds. Sequence and checkpoint activities grade an ordered list of
// option ids; quiz activities grade a single selected option.
const (
	ActivityKindSequence   = "sequence"
	ActivityKindCheckpoint = "checkpoint_prediction"
	ActivityKindQuiz       = "quiz"
)

type Activity struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	BookID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"book_id"`
	Book        *Book             `gorm:"constraint:OnDelete:CASCADE;foreignKey:BookID;references:ID" json:"book,omitempty"`
	Kind        string            `gorm:"column:kind;not null;index" json:"kind"`
	Title       string            `gorm:"column:title" json:"title,omitempty"`
	PageNumber  *int              `gorm:"column:page_number" json:"page_number,omitempty"` // checkpoint anchor
	MaxAttempts int               `gorm:"column:max_attempts;not null;default:0" json:"max_attempts"` // 0 = unlimited
	Options     []*ActivityOption `gorm:"foreignKey:ActivityID" json:"options,omitempty"`
	CreatedAt   time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null" json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"deleted_at,omitempty"`
}

func (Activity) TableName() string { return "activity" }

// IsBounded reports whether the activity enforces a retry cap.
func (a *Activity) IsBounded() bool { return a != nil && a.MaxAttempts > 0 }
