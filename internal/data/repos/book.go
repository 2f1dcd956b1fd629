package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/readling/readling-backend/internal/domain"
	"github.com/readling/readling-backend/internal/platform/logger"
)

type BookRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*domain.Book) ([]*domain.Book, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Book, error)
	ExistsByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
}

type bookRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBookRepo(db *gorm.DB, baseLog *logger.Logger) BookRepo {
	repoLog := baseLog.With("repo", "BookRepo")
	return &bookRepo{db: db, log: repoLog}
}

func (r *bookRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.Book) ([]*domain.Book, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*domain.Book{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *bookRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Book, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Book
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *bookRepo) ExistsByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if id == uuid.Nil {
		return false, nil
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.Book{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
