package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Book struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string         `gorm:"not null;column:title" json:"title"`
	Author    string         `gorm:"column:author" json:"author,omitempty"`
	PageCount int            `gorm:"column:page_count;not null;default:0" json:"page_count"`
	CoverURL  string         `gorm:"column:cover_url" json:"cover_url,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Book) TableName() string { return "book" }
