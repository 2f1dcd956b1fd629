package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/readling/readling-backend/internal/data/db"
	"github.com/readling/readling-backend/internal/domain"
	"github.com/readling/readling-backend/internal/platform/logger"
)

// testDB opens a private in-memory sqlite database per test. One connection
// only, so the memory database is shared across the pool.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrateAll(gdb); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return gdb
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func seedUser(t *testing.T, gdb *gorm.DB, email string) *domain.User {
	t.Helper()
	u := &domain.User{
		ID:        uuid.New(),
		Email:     email,
		FirstName: "Test",
		LastName:  "Student",
	}
	if err := gdb.WithContext(context.Background()).Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedBook(t *testing.T, gdb *gorm.DB, title string, pages int) *domain.Book {
	t.Helper()
	b := &domain.Book{
		ID:        uuid.New(),
		Title:     title,
		PageCount: pages,
	}
	if err := gdb.WithContext(context.Background()).Create(b).Error; err != nil {
		t.Fatalf("seed book: %v", err)
	}
	return b
}

func seedSequenceActivity(t *testing.T, gdb *gorm.DB, bookID uuid.UUID, orderLen, distractors, maxAttempts int) *domain.Activity {
	t.Helper()
	activity := &domain.Activity{
		ID:          uuid.New(),
		BookID:      bookID,
		Kind:        domain.ActivityKindSequence,
		MaxAttempts: maxAttempts,
	}
	if err := gdb.WithContext(context.Background()).Create(activity).Error; err != nil {
		t.Fatalf("seed activity: %v", err)
	}
	for i := 0; i < orderLen; i++ {
		pos := i + 1
		opt := &domain.ActivityOption{
			ID:              uuid.New(),
			ActivityID:      activity.ID,
			CorrectPosition: &pos,
		}
		if err := gdb.WithContext(context.Background()).Create(opt).Error; err != nil {
			t.Fatalf("seed option: %v", err)
		}
		activity.Options = append(activity.Options, opt)
	}
	for i := 0; i < distractors; i++ {
		opt := &domain.ActivityOption{
			ID:         uuid.New(),
			ActivityID: activity.ID,
		}
		if err := gdb.WithContext(context.Background()).Create(opt).Error; err != nil {
			t.Fatalf("seed distractor: %v", err)
		}
		activity.Options = append(activity.Options, opt)
	}
	return activity
}

func seedQuizActivity(t *testing.T, gdb *gorm.DB, bookID uuid.UUID, optionCount, correctIndex int) *domain.Activity {
	t.Helper()
	activity := &domain.Activity{
		ID:     uuid.New(),
		BookID: bookID,
		Kind:   domain.ActivityKindQuiz,
	}
	if err := gdb.WithContext(context.Background()).Create(activity).Error; err != nil {
		t.Fatalf("seed activity: %v", err)
	}
	for i := 0; i < optionCount; i++ {
		opt := &domain.ActivityOption{
			ID:         uuid.New(),
			ActivityID: activity.ID,
			IsCorrect:  i == correctIndex,
		}
		if err := gdb.WithContext(context.Background()).Create(opt).Error; err != nil {
			t.Fatalf("seed option: %v", err)
		}
		activity.Options = append(activity.Options, opt)
	}
	return activity
}
