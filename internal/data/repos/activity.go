package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/readling/readling-backend/internal/domain"
	pkgerrors "github.com/readling/readling-backend/internal/pkg/errors"
	"github.com/readling/readling-backend/internal/platform/logger"
)

type ActivityRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*domain.Activity) ([]*domain.Activity, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Activity, error)
	GetByBookID(ctx context.Context, tx *gorm.DB, bookID uuid.UUID) ([]*domain.Activity, error)
}

type activityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActivityRepo(db *gorm.DB, baseLog *logger.Logger) ActivityRepo {
	repoLog := baseLog.With("repo", "ActivityRepo")
	return &activityRepo{db: db, log: repoLog}
}

func (r *activityRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.Activity) ([]*domain.Activity, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*domain.Activity{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByID loads the definition with its full option arena.
func (r *activityRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Activity, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if id == uuid.Nil {
		return nil, pkgerrors.ErrNotFound
	}

	var result domain.Activity
	if err := transaction.WithContext(ctx).
		Preload("Options").
		Where("id = ?", id).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (r *activityRepo) GetByBookID(ctx context.Context, tx *gorm.DB, bookID uuid.UUID) ([]*domain.Activity, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Activity
	if bookID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Options").
		Where("book_id = ?", bookID).
		Order("page_number ASC NULLS LAST, created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
