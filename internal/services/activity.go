package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/readling/readling-backend/internal/data/repos"
	"github.com/readling/readling-backend/internal/domain"
	pkgerrors "github.com/readling/readling-backend/internal/pkg/errors"
	"github.com/readling/readling-backend/internal/platform/logger"
)

// SubmitResult is what a submission produces: the verdict, the recorded
// attempt id, and attempts remaining (nil for unbounded activities).
type SubmitResult struct {
	Verdict
	AttemptID         uuid.UUID `json:"attempt_id"`
	AttemptsRemaining *int      `json:"attempts_remaining,omitempty"`
}

// AttemptStatus summarizes a student's standing on one activity.
type AttemptStatus struct {
	Latest            *domain.Attempt `json:"latest,omitempty"`
	AttemptCount      int             `json:"attempt_count"`
	AttemptsRemaining *int            `json:"attempts_remaining,omitempty"`
}

// ActivityService orchestrates the submit flow: bounded-attempts gate, then
// the pure validator, then the ledger.
type ActivityService interface {
	Get(ctx context.Context, activityID uuid.UUID) (*domain.Activity, error)
	ListByBook(ctx context.Context, bookID uuid.UUID) ([]*domain.Activity, error)
	Submit(ctx context.Context, userID, activityID uuid.UUID, sub Submission) (*SubmitResult, error)
	Status(ctx context.Context, userID, activityID uuid.UUID) (*AttemptStatus, error)
}

type activityService struct {
	db       *gorm.DB
	log      *logger.Logger
	repo     repos.ActivityRepo
	attempts AttemptService
}

func NewActivityService(db *gorm.DB, baseLog *logger.Logger, repo repos.ActivityRepo, attempts AttemptService) ActivityService {
	return &activityService{
		db:       db,
		log:      baseLog.With("service", "ActivityService"),
		repo:     repo,
		attempts: attempts,
	}
}

func (s *activityService) Get(ctx context.Context, activityID uuid.UUID) (*domain.Activity, error) {
	return s.repo.GetByID(ctx, nil, activityID)
}

func (s *activityService) ListByBook(ctx context.Context, bookID uuid.UUID) ([]*domain.Activity, error) {
	return s.repo.GetByBookID(ctx, nil, bookID)
}

func (s *activityService) Submit(ctx context.Context, userID, activityID uuid.UUID, sub Submission) (*SubmitResult, error) {
	activity, err := s.repo.GetByID(ctx, nil, activityID)
	if err != nil {
		return nil, err
	}

	// Caller-side gate: bounded activities must have attempts left before the
	// validator runs. Validation failures below never consume an attempt.
	if activity.IsBounded() {
		remaining, err := s.attempts.Remaining(ctx, userID, activityID, activity.MaxAttempts)
		if err != nil {
			return nil, err
		}
		if remaining <= 0 {
			return nil, pkgerrors.ErrNoAttemptsRemaining
		}
	}

	verdict, err := ValidateSubmission(activity, sub)
	if err != nil {
		return nil, err
	}

	attempt, err := s.attempts.Record(ctx, nil, userID, activityID, sub, verdict.Correct)
	if err != nil {
		return nil, err
	}

	result := &SubmitResult{
		Verdict:   verdict,
		AttemptID: attempt.ID,
	}
	if activity.IsBounded() {
		remaining, err := s.attempts.Remaining(ctx, userID, activityID, activity.MaxAttempts)
		if err != nil {
			return nil, err
		}
		result.AttemptsRemaining = &remaining
	}
	s.log.Info("submission graded",
		"user_id", userID,
		"activity_id", activityID,
		"kind", activity.Kind,
		"correct", verdict.Correct,
	)
	return result, nil
}

func (s *activityService) Status(ctx context.Context, userID, activityID uuid.UUID) (*AttemptStatus, error) {
	activity, err := s.repo.GetByID(ctx, nil, activityID)
	if err != nil {
		return nil, err
	}

	latest, err := s.attempts.Latest(ctx, userID, activityID)
	if err != nil {
		return nil, err
	}
	count, err := s.attempts.Count(ctx, userID, activityID)
	if err != nil {
		return nil, err
	}

	status := &AttemptStatus{
		Latest:       latest,
		AttemptCount: count,
	}
	if activity.IsBounded() {
		remaining, err := s.attempts.Remaining(ctx, userID, activityID, activity.MaxAttempts)
		if err != nil {
			return nil, err
		}
		status.AttemptsRemaining = &remaining
	}
	return status, nil
}
