package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/readling/readling-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *domain.User {
	tb.Helper()
	u := &domain.User{
		ID:        uuid.New(),
		Email:     email,
		FirstName: "A",
		LastName:  "B",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedBook(tb testing.TB, ctx context.Context, tx *gorm.DB, title string) *domain.Book {
	tb.Helper()
	b := &domain.Book{
		ID:        uuid.New(),
		Title:     title,
		PageCount: 12,
	}
	if err := tx.WithContext(ctx).Create(b).Error; err != nil {
		tb.Fatalf("seed book: %v", err)
	}
	return b
}

func SeedActivity(tb testing.TB, ctx context.Context, tx *gorm.DB, bookID uuid.UUID, kind string, maxAttempts int) *domain.Activity {
	tb.Helper()
	a := &domain.Activity{
		ID:          uuid.New(),
		BookID:      bookID,
		Kind:        kind,
		MaxAttempts: maxAttempts,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed activity: %v", err)
	}
	return a
}

func SeedOption(tb testing.TB, ctx context.Context, tx *gorm.DB, activityID uuid.UUID, position *int, isCorrect bool) *domain.ActivityOption {
	tb.Helper()
	o := &domain.ActivityOption{
		ID:              uuid.New(),
		ActivityID:      activityID,
		CorrectPosition: position,
		IsCorrect:       isCorrect,
	}
	if err := tx.WithContext(ctx).Create(o).Error; err != nil {
		tb.Fatalf("seed option: %v", err)
	}
	return o
}

func SeedBadge(tb testing.TB, ctx context.Context, tx *gorm.DB, criterion string, threshold int, createdAt time.Time) *domain.Badge {
	tb.Helper()
	b := &domain.Badge{
		ID:        uuid.New(),
		Name:      criterion,
		Criterion: criterion,
		Threshold: threshold,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if err := tx.WithContext(ctx).Create(b).Error; err != nil {
		tb.Fatalf("seed badge: %v", err)
	}
	return b
}
