package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/readling/readling-backend/internal/domain"
	"github.com/readling/readling-backend/internal/platform/logger"
)

// AttemptRepo is append-only: no update or delete methods exist on purpose.
type AttemptRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*domain.Attempt) ([]*domain.Attempt, error)
	GetLatest(ctx context.Context, tx *gorm.DB, userID, activityID uuid.UUID) (*domain.Attempt, error)
	CountByUserAndActivity(ctx context.Context, tx *gorm.DB, userID, activityID uuid.UUID) (int64, error)
	GetByUserAndActivity(ctx context.Context, tx *gorm.DB, userID, activityID uuid.UUID) ([]*domain.Attempt, error)
}

type attemptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAttemptRepo(db *gorm.DB, baseLog *logger.Logger) AttemptRepo {
	repoLog := baseLog.With("repo", "AttemptRepo")
	return &attemptRepo{db: db, log: repoLog}
}

func (r *attemptRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.Attempt) ([]*domain.Attempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*domain.Attempt{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetLatest orders by created_at, ties broken by highest id. Returns nil, nil
// when the student has no attempts for the activity.
func (r *attemptRepo) GetLatest(ctx context.Context, tx *gorm.DB, userID, activityID uuid.UUID) (*domain.Attempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if userID == uuid.Nil || activityID == uuid.Nil {
		return nil, nil
	}

	var result domain.Attempt
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND activity_id = ?", userID, activityID).
		Order("created_at DESC, id DESC").
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *attemptRepo) CountByUserAndActivity(ctx context.Context, tx *gorm.DB, userID, activityID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if userID == uuid.Nil || activityID == uuid.Nil {
		return 0, nil
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.Attempt{}).
		Where("user_id = ? AND activity_id = ?", userID, activityID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *attemptRepo) GetByUserAndActivity(ctx context.Context, tx *gorm.DB, userID, activityID uuid.UUID) ([]*domain.Attempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Attempt
	if userID == uuid.Nil || activityID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND activity_id = ?", userID, activityID).
		Order("created_at ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
