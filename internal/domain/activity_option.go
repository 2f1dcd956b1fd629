package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityOption is one element of an activity's flat option arena. Sequence and
// checkpoint options carry a 1-based CorrectPosition when they belong to the
// canonical order (nil marks a distractor). Quiz options carry IsCorrect instead.
type ActivityOption struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ActivityID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"activity_id"`
	Activity        *Activity      `gorm:"constraint:OnDelete:CASCADE;foreignKey:ActivityID;references:ID" json:"activity,omitempty"`
	Label           string         `gorm:"column:label" json:"label,omitempty"`
	ImageURL        string         `gorm:"column:image_url" json:"image_url,omitempty"`
	CorrectPosition *int           `gorm:"column:correct_position" json:"correct_position,omitempty"`
	IsCorrect       bool           `gorm:"column:is_correct;not null;default:false" json:"is_correct"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ActivityOption) TableName() string { return "activity_option" }
