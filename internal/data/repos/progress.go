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

// SkillAverages carries per-student averages over set scores only; a skill no
// record has scored yet comes back nil.
type SkillAverages struct {
	Comprehension *float64 `json:"comprehension"`
	Vocabulary    *float64 `json:"vocabulary"`
	Phonics       *float64 `json:"phonics"`
	WordsLearned  int      `json:"words_learned"`
}

type ReadingProgressRepo interface {
	InsertIgnoreDuplicate(ctx context.Context, tx *gorm.DB, row *domain.ReadingProgress) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.ReadingProgress, error)
	GetByUserAndBook(ctx context.Context, tx *gorm.DB, userID, bookID uuid.UUID) (*domain.ReadingProgress, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, completed bool) ([]*domain.ReadingProgress, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, completed bool) (int64, error)
	AveragesByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*SkillAverages, error)
}

type readingProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReadingProgressRepo(db *gorm.DB, baseLog *logger.Logger) ReadingProgressRepo {
	repoLog := baseLog.With("repo", "ReadingProgressRepo")
	return &readingProgressRepo{db: db, log: repoLog}
}

// InsertIgnoreDuplicate inserts unless a row for (user_id, book_id) already
// exists. This is the atomic find-or-create point for concurrent first starts.
func (r *readingProgressRepo) InsertIgnoreDuplicate(ctx context.Context, tx *gorm.DB, row *domain.ReadingProgress) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
			DoNothing: true,
		}).
		Create(row).Error
}

func (r *readingProgressRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.ReadingProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if id == uuid.Nil {
		return nil, pkgerrors.ErrNotFound
	}

	var result domain.ReadingProgress
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (r *readingProgressRepo) GetByUserAndBook(ctx context.Context, tx *gorm.DB, userID, bookID uuid.UUID) (*domain.ReadingProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if userID == uuid.Nil || bookID == uuid.Nil {
		return nil, pkgerrors.ErrNotFound
	}

	var result domain.ReadingProgress
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (r *readingProgressRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if id == uuid.Nil || len(fields) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&domain.ReadingProgress{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// ListByUser orders completed records by finished_at desc and in-progress
// records by last_read_at desc, newest activity first.
func (r *readingProgressRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, completed bool) ([]*domain.ReadingProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.ReadingProgress
	if userID == uuid.Nil {
		return results, nil
	}

	query := transaction.WithContext(ctx).
		Where("user_id = ? AND completed = ?", userID, completed)
	if completed {
		query = query.Order("finished_at DESC")
	} else {
		query = query.Order("last_read_at DESC NULLS LAST, started_at DESC")
	}
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *readingProgressRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, completed bool) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if userID == uuid.Nil {
		return 0, nil
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.ReadingProgress{}).
		Where("user_id = ? AND completed = ?", userID, completed).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// AveragesByUser relies on SQL AVG ignoring NULLs, so unset scores never count
// against the denominator.
func (r *readingProgressRepo) AveragesByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*SkillAverages, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	result := &SkillAverages{}
	if userID == uuid.Nil {
		return result, nil
	}

	row := struct {
		AvgComprehension *float64
		AvgVocabulary    *float64
		AvgPhonics       *float64
		SumWords         *int
	}{}
	if err := transaction.WithContext(ctx).
		Model(&domain.ReadingProgress{}).
		Select(
			"AVG(comprehension_score) AS avg_comprehension, " +
				"AVG(vocabulary_score) AS avg_vocabulary, " +
				"AVG(phonics_score) AS avg_phonics, " +
				"SUM(words_learned) AS sum_words",
		).
		Where("user_id = ?", userID).
		Scan(&row).Error; err != nil {
		return nil, err
	}

	result.Comprehension = row.AvgComprehension
	result.Vocabulary = row.AvgVocabulary
	result.Phonics = row.AvgPhonics
	if row.SumWords != nil {
		result.WordsLearned = *row.SumWords
	}
	return result, nil
}
