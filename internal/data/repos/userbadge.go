package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/readling/readling-backend/internal/domain"
	pkgerrors "github.com/readling/readling-backend/internal/pkg/errors"
	"github.com/readling/readling-backend/internal/platform/logger"
)

type UserBadgeRepo interface {
	InsertIgnoreDuplicate(ctx context.Context, tx *gorm.DB, row *domain.UserBadge) error
	GetByUserAndBadge(ctx context.Context, tx *gorm.DB, userID, badgeID uuid.UUID) (*domain.UserBadge, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*domain.UserBadge, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error
}

type userBadgeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserBadgeRepo(db *gorm.DB, baseLog *logger.Logger) UserBadgeRepo {
	repoLog := baseLog.With("repo", "UserBadgeRepo")
	return &userBadgeRepo{db: db, log: repoLog}
}

// InsertIgnoreDuplicate is the atomic find-or-create point for the unique
// (user_id, badge_id) pair; concurrent first updates cannot produce two rows.
func (r *userBadgeRepo) InsertIgnoreDuplicate(ctx context.Context, tx *gorm.DB, row *domain.UserBadge) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "badge_id"}},
			DoNothing: true,
		}).
		Create(row).Error
}

func (r *userBadgeRepo) GetByUserAndBadge(ctx context.Context, tx *gorm.DB, userID, badgeID uuid.UUID) (*domain.UserBadge, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if userID == uuid.Nil || badgeID == uuid.Nil {
		return nil, pkgerrors.ErrNotFound
	}

	var result domain.UserBadge
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND badge_id = ?", userID, badgeID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (r *userBadgeRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*domain.UserBadge, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.UserBadge
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Badge").
		Where("user_id = ?", userID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *userBadgeRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if id == uuid.Nil || len(fields) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&domain.UserBadge{}).
		Where("id = ?", id).
		Updates(fields).Error
}
