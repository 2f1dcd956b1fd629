package app

import (
	"gorm.io/gorm"

	"github.com/readling/readling-backend/internal/data/repos"
	"github.com/readling/readling-backend/internal/platform/logger"
)

type Repos struct {
	User            repos.UserRepo
	Book            repos.BookRepo
	Activity        repos.ActivityRepo
	Attempt         repos.AttemptRepo
	ReadingProgress repos.ReadingProgressRepo
	Badge           repos.BadgeRepo
	UserBadge       repos.UserBadgeRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:            repos.NewUserRepo(db, log),
		Book:            repos.NewBookRepo(db, log),
		Activity:        repos.NewActivityRepo(db, log),
		Attempt:         repos.NewAttemptRepo(db, log),
		ReadingProgress: repos.NewReadingProgressRepo(db, log),
		Badge:           repos.NewBadgeRepo(db, log),
		UserBadge:       repos.NewUserBadgeRepo(db, log),
	}
}
