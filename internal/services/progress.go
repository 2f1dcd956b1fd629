package services

import (
	"context"
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

// SkillScoreUpdate carries the extras some skills accept: an additive
// words-learned delta for vocabulary and a wholesale breakdown replacement for
// comprehension.
type SkillScoreUpdate struct {
	NewWordsLearned int                    `json:"new_words_learned,omitempty"`
	Breakdown       map[string]interface{} `json:"breakdown,omitempty"`
}

// StudentProgressSummary is the per-student query surface in one shape.
type StudentProgressSummary struct {
	Completed       []*domain.ReadingProgress `json:"completed"`
	InProgress      []*domain.ReadingProgress `json:"in_progress"`
	CompletedCount  int64                     `json:"completed_count"`
	InProgressCount int64                     `json:"in_progress_count"`
	SkillAverages   *repos.SkillAverages      `json:"skill_averages"`
}

type ProgressService interface {
	StartReading(ctx context.Context, userID, bookID uuid.UUID) (*domain.ReadingProgress, error)
	UpdateProgress(ctx context.Context, trackerID uuid.UUID, pageNumber, additionalSeconds int) (*domain.ReadingProgress, error)
	Complete(ctx context.Context, trackerID uuid.UUID) (*domain.ReadingProgress, error)
	UpdateSkillScore(ctx context.Context, trackerID uuid.UUID, skill string, score float64, extra SkillScoreUpdate) (*domain.ReadingProgress, error)
	GetByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) (*domain.ReadingProgress, error)
	Summary(ctx context.Context, userID uuid.UUID) (*StudentProgressSummary, error)
}

type progressService struct {
	db    *gorm.DB
	log   *logger.Logger
	repo  repos.ReadingProgressRepo
	books repos.BookRepo
}

func NewProgressService(db *gorm.DB, baseLog *logger.Logger, repo repos.ReadingProgressRepo, books repos.BookRepo) ProgressService {
	return &progressService{
		db:    db,
		log:   baseLog.With("service", "ProgressService"),
		repo:  repo,
		books: books,
	}
}

// StartReading is idempotent: the first call for a (student, book) pair creates
// the tracker, later calls return the existing record untouched. The insert-
// ignore keeps concurrent first starts from producing duplicate rows.
func (s *progressService) StartReading(ctx context.Context, userID, bookID uuid.UUID) (*domain.ReadingProgress, error) {
	if userID == uuid.Nil || bookID == uuid.Nil {
		return nil, fmt.Errorf("%w: user and book required", pkgerrors.ErrInvalidArgument)
	}

	exists, err := s.books.ExistsByID(ctx, nil, bookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: book %s", pkgerrors.ErrNotFound, bookID)
	}

	row := &domain.ReadingProgress{
		ID:        uuid.New(),
		UserID:    userID,
		BookID:    bookID,
		StartedAt: time.Now().UTC(),
	}
	if err := s.repo.InsertIgnoreDuplicate(ctx, nil, row); err != nil {
		return nil, err
	}
	return s.repo.GetByUserAndBook(ctx, nil, userID, bookID)
}

func (s *progressService) UpdateProgress(ctx context.Context, trackerID uuid.UUID, pageNumber, additionalSeconds int) (*domain.ReadingProgress, error) {
	if pageNumber < 0 || additionalSeconds < 0 {
		return nil, fmt.Errorf("%w: page and duration must be non-negative", pkgerrors.ErrInvalidArgument)
	}
	if _, err := s.repo.GetByID(ctx, nil, trackerID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	fields := map[string]interface{}{
		// Page is an overwrite on purpose; children jump around books.
		"last_page_read":        pageNumber,
		"total_reading_seconds": gorm.Expr("total_reading_seconds + ?", additionalSeconds),
		"last_read_at":          now,
		"updated_at":            now,
	}
	if err := s.repo.UpdateFields(ctx, nil, trackerID, fields); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, nil, trackerID)
}

// Complete is an idempotent terminal transition: finished_at is stamped on the
// first call only, re-invocations still succeed.
func (s *progressService) Complete(ctx context.Context, trackerID uuid.UUID) (*domain.ReadingProgress, error) {
	record, err := s.repo.GetByID(ctx, nil, trackerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	fields := map[string]interface{}{
		"completed":  true,
		"updated_at": now,
	}
	if record.FinishedAt == nil {
		fields["finished_at"] = now
	}
	if err := s.repo.UpdateFields(ctx, nil, trackerID, fields); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, nil, trackerID)
}

func (s *progressService) UpdateSkillScore(ctx context.Context, trackerID uuid.UUID, skill string, score float64, extra SkillScoreUpdate) (*domain.ReadingProgress, error) {
	if _, err := s.repo.GetByID(ctx, nil, trackerID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	fields := map[string]interface{}{"updated_at": now}
	switch skill {
	case domain.SkillComprehension:
		fields["comprehension_score"] = score
		if extra.Breakdown != nil {
			// The breakdown replaces the stored map wholesale.
			fields["comprehension_breakdown"] = datatypes.JSONMap(extra.Breakdown)
		}
	case domain.SkillVocabulary:
		if extra.NewWordsLearned < 0 {
			return nil, fmt.Errorf("%w: words-learned delta must be non-negative", pkgerrors.ErrInvalidArgument)
		}
		fields["vocabulary_score"] = score
		if extra.NewWordsLearned > 0 {
			fields["words_learned"] = gorm.Expr("words_learned + ?", extra.NewWordsLearned)
		}
	case domain.SkillPhonics:
		fields["phonics_score"] = score
	default:
		return nil, fmt.Errorf("%w: unknown skill %q", pkgerrors.ErrInvalidArgument, skill)
	}

	if err := s.repo.UpdateFields(ctx, nil, trackerID, fields); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, nil, trackerID)
}

func (s *progressService) GetByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) (*domain.ReadingProgress, error) {
	return s.repo.GetByUserAndBook(ctx, nil, userID, bookID)
}

func (s *progressService) Summary(ctx context.Context, userID uuid.UUID) (*StudentProgressSummary, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user required", pkgerrors.ErrInvalidArgument)
	}

	completed, err := s.repo.ListByUser(ctx, nil, userID, true)
	if err != nil {
		return nil, err
	}
	inProgress, err := s.repo.ListByUser(ctx, nil, userID, false)
	if err != nil {
		return nil, err
	}
	completedCount, err := s.repo.CountByUser(ctx, nil, userID, true)
	if err != nil {
		return nil, err
	}
	inProgressCount, err := s.repo.CountByUser(ctx, nil, userID, false)
	if err != nil {
		return nil, err
	}
	averages, err := s.repo.AveragesByUser(ctx, nil, userID)
	if err != nil {
		return nil, err
	}

	return &StudentProgressSummary{
		Completed:       completed,
		InProgress:      inProgress,
		CompletedCount:  completedCount,
		InProgressCount: inProgressCount,
		SkillAverages:   averages,
	}, nil
}
