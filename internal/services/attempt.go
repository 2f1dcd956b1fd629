package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/readling/readling-backend/internal/data/repos"
	"github.com/readling/readling-backend/internal/domain"
	pkgerrors "github.com/readling/readling-backend/internal/pkg/errors"
	"github.com/readling/readling-backend/internal/platform/logger"
)

// AttemptService is the attempt ledger: append-only records plus the count
// queries the bounded-attempts gate is built on. Recording never blocks, even
// past a cap; enforcement of the cutoff belongs to the caller.
type AttemptService interface {
	Record(ctx context.Context, tx *gorm.DB, userID, activityID uuid.UUID, sub Submission, correct bool) (*domain.Attempt, error)
	Latest(ctx context.Context, userID, activityID uuid.UUID) (*domain.Attempt, error)
	Count(ctx context.Context, userID, activityID uuid.UUID) (int, error)
	Remaining(ctx context.Context, userID, activityID uuid.UUID, maxAttempts int) (int, error)
}

type attemptService struct {
	db   *gorm.DB
	log  *logger.Logger
	repo repos.AttemptRepo
}

func NewAttemptService(db *gorm.DB, baseLog *logger.Logger, repo repos.AttemptRepo) AttemptService {
	return &attemptService{
		db:   db,
		log:  baseLog.With("service", "AttemptService"),
		repo: repo,
	}
}

func (s *attemptService) Record(ctx context.Context, tx *gorm.DB, userID, activityID uuid.UUID, sub Submission, correct bool) (*domain.Attempt, error) {
	if userID == uuid.Nil || activityID == uuid.Nil {
		return nil, fmt.Errorf("%w: user and activity required", pkgerrors.ErrInvalidArgument)
	}

	payload, err := json.Marshal(sub)
	if err != nil {
		return nil, fmt.Errorf("marshal attempt payload: %w", err)
	}

	row := &domain.Attempt{
		ID:         uuid.New(),
		UserID:     userID,
		ActivityID: activityID,
		Payload:    datatypes.JSON(payload),
		IsCorrect:  correct,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := s.repo.Create(ctx, tx, []*domain.Attempt{row}); err != nil {
		return nil, err
	}
	s.log.Debug("attempt recorded", "user_id", userID, "activity_id", activityID, "correct", correct)
	return row, nil
}

func (s *attemptService) Latest(ctx context.Context, userID, activityID uuid.UUID) (*domain.Attempt, error) {
	return s.repo.GetLatest(ctx, nil, userID, activityID)
}

func (s *attemptService) Count(ctx context.Context, userID, activityID uuid.UUID) (int, error) {
	n, err := s.repo.CountByUserAndActivity(ctx, nil, userID, activityID)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// Remaining floors at zero; the ledger itself places no cap on recording.
func (s *attemptService) Remaining(ctx context.Context, userID, activityID uuid.UUID, maxAttempts int) (int, error) {
	count, err := s.Count(ctx, userID, activityID)
	if err != nil {
		return 0, err
	}
	remaining := maxAttempts - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}
