package app

import (
	"gorm.io/gorm"

	"github.com/readling/readling-backend/internal/platform/cache"
	"github.com/readling/readling-backend/internal/platform/logger"
	"github.com/readling/readling-backend/internal/services"
)

type Services struct {
	Attempt     services.AttemptService
	Activity    services.ActivityService
	Progress    services.ProgressService
	Achievement services.AchievementService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, badgeCache cache.Cache) Services {
	log.Info("Wiring services...")

	attemptSvc := services.NewAttemptService(db, log, reposet.Attempt)
	activitySvc := services.NewActivityService(db, log, reposet.Activity, attemptSvc)
	progressSvc := services.NewProgressService(db, log, reposet.ReadingProgress, reposet.Book)
	achievementSvc := services.NewAchievementService(db, log, reposet.Badge, reposet.UserBadge, reposet.User, badgeCache)

	return Services{
		Attempt:     attemptSvc,
		Activity:    activitySvc,
		Progress:    progressSvc,
		Achievement: achievementSvc,
	}
}
