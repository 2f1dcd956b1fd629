package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Skill names accepted by the progress tracker.
const (
	SkillComprehension = "comprehension"
	SkillVocabulary    = "vocabulary"
	SkillPhonics       = "phonics"
)

// ReadingProgress is the per-(student, book) tracker. Skill scores are nullable
// so unset scores stay out of average denominators.
type ReadingProgress struct {
	ID                     uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID                 uuid.UUID         `gorm:"type:uuid;not null;index:idx_progress_user_book,unique" json:"user_id"`
	User                   *User             `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	BookID                 uuid.UUID         `gorm:"type:uuid;not null;index:idx_progress_user_book,unique" json:"book_id"`
	Book                   *Book             `gorm:"constraint:OnDelete:CASCADE;foreignKey:BookID;references:ID" json:"book,omitempty"`
	Completed              bool              `gorm:"column:completed;not null;default:false" json:"completed"`
	StartedAt              time.Time         `gorm:"column:started_at;not null" json:"started_at"`
	FinishedAt             *time.Time        `gorm:"column:finished_at" json:"finished_at,omitempty"`
	TotalReadingSeconds    int               `gorm:"column:total_reading_seconds;not null;default:0" json:"total_reading_seconds"`
	LastPageRead           int               `gorm:"column:last_page_read;not null;default:0" json:"last_page_read"`
	LastReadAt             *time.Time        `gorm:"column:last_read_at" json:"last_read_at,omitempty"`
	ComprehensionScore     *float64          `gorm:"column:comprehension_score" json:"comprehension_score,omitempty"`
	VocabularyScore        *float64          `gorm:"column:vocabulary_score" json:"vocabulary_score,omitempty"`
	PhonicsScore           *float64          `gorm:"column:phonics_score" json:"phonics_score,omitempty"`
	WordsLearned           int               `gorm:"column:words_learned;not null;default:0" json:"words_learned"`
	ComprehensionBreakdown datatypes.JSONMap `gorm:"column:comprehension_breakdown" json:"comprehension_breakdown,omitempty"`
	CreatedAt              time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt              time.Time         `gorm:"not null" json:"updated_at"`
	DeletedAt              gorm.DeletedAt    `gorm:"index" json:"deleted_at,omitempty"`
}

func (ReadingProgress) TableName() string { return "reading_progress" }
