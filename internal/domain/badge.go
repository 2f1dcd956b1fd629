package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Well-known achievement criteria. The criterion column is free-form so new
// badges can ship without a code change.
const (
	CriterionBooksRead         = "BOOKS_READ"
	CriterionPagesRead         = "PAGES_READ"
	CriterionWordsLearned      = "WORDS_LEARNED"
	CriterionActivitiesCleared = "ACTIVITIES_CLEARED"
)

type Badge struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"not null;column:name" json:"name"`
	Description string         `gorm:"column:description" json:"description,omitempty"`
	ImageURL    string         `gorm:"column:image_url" json:"image_url,omitempty"`
	Criterion   string         `gorm:"column:criterion;not null;index" json:"criterion"`
	Threshold   int            `gorm:"column:threshold;not null" json:"threshold"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Badge) TableName() string { return "badge" }
