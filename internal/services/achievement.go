package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/readling/readling-backend/internal/data/repos"
	"github.com/readling/readling-backend/internal/domain"
	pkgerrors "github.com/readling/readling-backend/internal/pkg/errors"
	"github.com/readling/readling-backend/internal/platform/apierr"
	"github.com/readling/readling-backend/internal/platform/cache"
	"github.com/readling/readling-backend/internal/platform/logger"
)

// BadgeStanding pairs a student's badge record with its definition and the
// live earned state recomputed from stored values.
type BadgeStanding struct {
	Record             *domain.UserBadge `json:"record"`
	Badge              *domain.Badge     `json:"badge"`
	Earned             bool              `json:"earned"`
	ProgressPercentage int               `json:"progress_percentage"`
}

type AchievementService interface {
	// UpdateProgress overwrites the student's cumulative progress under a
	// criterion with an absolute value supplied by the caller, stamping
	// earned_at exactly once on the first threshold crossing.
	UpdateProgress(ctx context.Context, userID uuid.UUID, criterion string, value int) (*domain.UserBadge, error)
	ListEarned(ctx context.Context, userID uuid.UUID) ([]*BadgeStanding, error)
	ListInProgress(ctx context.Context, userID uuid.UUID) ([]*BadgeStanding, error)
}

type achievementService struct {
	db         *gorm.DB
	log        *logger.Logger
	badges     repos.BadgeRepo
	userBadges repos.UserBadgeRepo
	users      repos.UserRepo
	cache      cache.Cache
}

func NewAchievementService(db *gorm.DB, baseLog *logger.Logger, badges repos.BadgeRepo, userBadges repos.UserBadgeRepo, users repos.UserRepo, badgeCache cache.Cache) AchievementService {
	return &achievementService{
		db:         db,
		log:        baseLog.With("service", "AchievementService"),
		badges:     badges,
		userBadges: userBadges,
		users:      users,
		cache:      badgeCache,
	}
}

func (s *achievementService) UpdateProgress(ctx context.Context, userID uuid.UUID, criterion string, value int) (*domain.UserBadge, error) {
	if value < 0 {
		return nil, apierr.New(http.StatusBadRequest, "negative_progress",
			fmt.Errorf("progress value must be non-negative, got %d", value))
	}

	exists, err := s.users.ExistsByID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: student %s", pkgerrors.ErrNotFound, userID)
	}

	badge, err := s.resolveBadge(ctx, criterion)
	if err != nil {
		return nil, err
	}

	var result *domain.UserBadge
	err = s.db.Transaction(func(tx *gorm.DB) error {
		seed := &domain.UserBadge{
			ID:      uuid.New(),
			UserID:  userID,
			BadgeID: badge.ID,
		}
		if err := s.userBadges.InsertIgnoreDuplicate(ctx, tx, seed); err != nil {
			return err
		}
		record, err := s.userBadges.GetByUserAndBadge(ctx, tx, userID, badge.ID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		fields := map[string]interface{}{
			"current_progress": value,
			"updated_at":       now,
		}
		// First crossing wins; earned_at survives later regressions.
		if record.EarnedAt == nil && value >= badge.Threshold {
			fields["earned_at"] = now
			s.log.Info("badge earned", "user_id", userID, "badge_id", badge.ID, "criterion", criterion)
		}
		if err := s.userBadges.UpdateFields(ctx, tx, record.ID, fields); err != nil {
			return err
		}

		result, err = s.userBadges.GetByUserAndBadge(ctx, tx, userID, badge.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *achievementService) ListEarned(ctx context.Context, userID uuid.UUID) ([]*BadgeStanding, error) {
	return s.listByEarned(ctx, userID, true)
}

func (s *achievementService) ListInProgress(ctx context.Context, userID uuid.UUID) ([]*BadgeStanding, error) {
	return s.listByEarned(ctx, userID, false)
}

// listByEarned partitions live from stored values, independent of the frozen
// earned_at stamp.
func (s *achievementService) listByEarned(ctx context.Context, userID uuid.UUID, earned bool) ([]*BadgeStanding, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user required", pkgerrors.ErrInvalidArgument)
	}

	rows, err := s.userBadges.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}

	results := make([]*BadgeStanding, 0, len(rows))
	for _, row := range rows {
		if row.Badge == nil {
			continue
		}
		isEarned := row.CurrentProgress >= row.Badge.Threshold
		if isEarned != earned {
			continue
		}
		results = append(results, &BadgeStanding{
			Record:             row,
			Badge:              row.Badge,
			Earned:             isEarned,
			ProgressPercentage: ProgressPercentage(row.CurrentProgress, row.Badge.Threshold),
		})
	}
	return results, nil
}

// resolveBadge picks the first badge registered under a criterion by creation
// order when several share it. Read-through cache; a cache outage degrades to
// the database.
func (s *achievementService) resolveBadge(ctx context.Context, criterion string) (*domain.Badge, error) {
	if criterion == "" {
		return nil, fmt.Errorf("%w: criterion required", pkgerrors.ErrInvalidArgument)
	}

	key := "badges:criterion:" + criterion
	var cached []*domain.Badge
	if s.cache != nil {
		if hit, err := s.cache.GetJSON(ctx, key, &cached); err != nil {
			s.log.Warn("badge cache read failed", "criterion", criterion, "error", err)
		} else if hit && len(cached) > 0 {
			return cached[0], nil
		}
	}

	badges, err := s.badges.GetByCriterion(ctx, nil, criterion)
	if err != nil {
		return nil, err
	}
	if len(badges) == 0 {
		return nil, fmt.Errorf("%w: %s", pkgerrors.ErrNoBadgeForCriterion, criterion)
	}
	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, badges); err != nil {
			s.log.Warn("badge cache write failed", "criterion", criterion, "error", err)
		}
	}
	return badges[0], nil
}

// ProgressPercentage caps at 100 and treats a non-positive threshold as zero
// progress.
func ProgressPercentage(progress, threshold int) int {
	if threshold <= 0 {
		return 0
	}
	pct := 100 * progress / threshold
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}
