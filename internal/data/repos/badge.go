package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/readling/readling-backend/internal/domain"
	"github.com/readling/readling-backend/internal/platform/logger"
)

type BadgeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*domain.Badge) ([]*domain.Badge, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Badge, error)
	GetByCriterion(ctx context.Context, tx *gorm.DB, criterion string) ([]*domain.Badge, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Badge, error)
}

type badgeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBadgeRepo(db *gorm.DB, baseLog *logger.Logger) BadgeRepo {
	repoLog := baseLog.With("repo", "BadgeRepo")
	return &badgeRepo{db: db, log: repoLog}
}

func (r *badgeRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.Badge) ([]*domain.Badge, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*domain.Badge{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *badgeRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Badge, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Badge
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

// GetByCriterion returns creation order so callers that must pick one badge
// among several sharing a criterion do so deterministically.
func (r *badgeRepo) GetByCriterion(ctx context.Context, tx *gorm.DB, criterion string) ([]*domain.Badge, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Badge
	if criterion == "" {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("criterion = ?", criterion).
		Order("created_at ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *badgeRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Badge, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Badge
	if err := transaction.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
