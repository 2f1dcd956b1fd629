package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/readling/readling-backend/internal/data/repos"
	"github.com/readling/readling-backend/internal/domain"
	pkgerrors "github.com/readling/readling-backend/internal/pkg/errors"
	"github.com/readling/readling-backend/internal/platform/apierr"
)

func newAchievementService(t *testing.T) (AchievementService, *gorm.DB, context.Context) {
	t.Helper()
	gdb := testDB(t)
	log := testLogger(t)
	svc := NewAchievementService(
		gdb,
		log,
		repos.NewBadgeRepo(gdb, log),
		repos.NewUserBadgeRepo(gdb, log),
		repos.NewUserRepo(gdb, log),
		nil, // no cache in tests; the service must degrade to the database
	)
	return svc, gdb, context.Background()
}

func seedBadge(t *testing.T, gdb *gorm.DB, name, criterion string, threshold int, createdAt time.Time) *domain.Badge {
	t.Helper()
	b := &domain.Badge{
		ID:        uuid.New(),
		Name:      name,
		Criterion: criterion,
		Threshold: threshold,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, gdb.WithContext(context.Background()).Create(b).Error)
	return b
}

func TestUpdateProgress_EarnedAtStampedOnceAndFrozen(t *testing.T) {
	svc, gdb, ctx := newAchievementService(t)
	user := seedUser(t, gdb, "finn@example.com")
	badge := seedBadge(t, gdb, "Bookworm", domain.CriterionBooksRead, 5, time.Now().UTC())

	// Below threshold: progress moves, nothing earned.
	record, err := svc.UpdateProgress(ctx, user.ID, domain.CriterionBooksRead, 3)
	require.NoError(t, err)
	require.Equal(t, 3, record.CurrentProgress)
	require.Nil(t, record.EarnedAt)

	// Crossing stamps earned_at.
	record, err = svc.UpdateProgress(ctx, user.ID, domain.CriterionBooksRead, 5)
	require.NoError(t, err)
	require.Equal(t, 5, record.CurrentProgress)
	require.NotNil(t, record.EarnedAt)
	earnedAt := *record.EarnedAt

	// Regression overwrites progress but never clears the stamp.
	record, err = svc.UpdateProgress(ctx, user.ID, domain.CriterionBooksRead, 2)
	require.NoError(t, err)
	require.Equal(t, 2, record.CurrentProgress)
	require.NotNil(t, record.EarnedAt)
	require.True(t, record.EarnedAt.Equal(earnedAt), "earned_at must keep its first value")

	// Re-crossing must not re-stamp.
	record, err = svc.UpdateProgress(ctx, user.ID, domain.CriterionBooksRead, 7)
	require.NoError(t, err)
	require.True(t, record.EarnedAt.Equal(earnedAt))
	require.Equal(t, badge.ID, record.BadgeID)
}

func TestUpdateProgress_RejectsNegativeValueWithStatus(t *testing.T) {
	svc, gdb, ctx := newAchievementService(t)
	user := seedUser(t, gdb, "rex@example.com")
	seedBadge(t, gdb, "Bookworm", domain.CriterionBooksRead, 5, time.Now().UTC())

	_, err := svc.UpdateProgress(ctx, user.ID, domain.CriterionBooksRead, -1)
	require.Error(t, err)

	var ae *apierr.Error
	require.ErrorAs(t, err, &ae)
	require.Equal(t, http.StatusBadRequest, ae.Status)
	require.Equal(t, "negative_progress", ae.Code)
}

func TestUpdateProgress_ErrorsForMissingStudentOrCriterion(t *testing.T) {
	svc, gdb, ctx := newAchievementService(t)
	user := seedUser(t, gdb, "june@example.com")
	seedBadge(t, gdb, "Word Wizard", domain.CriterionWordsLearned, 50, time.Now().UTC())

	_, err := svc.UpdateProgress(ctx, uuid.New(), domain.CriterionWordsLearned, 10)
	require.ErrorIs(t, err, pkgerrors.ErrNotFound)

	_, err = svc.UpdateProgress(ctx, user.ID, "UNKNOWN_CRITERION", 10)
	require.ErrorIs(t, err, pkgerrors.ErrNoBadgeForCriterion)
}

func TestUpdateProgress_PicksOldestBadgeForSharedCriterion(t *testing.T) {
	svc, gdb, ctx := newAchievementService(t)
	user := seedUser(t, gdb, "omar@example.com")

	base := time.Now().UTC().Add(-time.Hour)
	older := seedBadge(t, gdb, "First Steps", domain.CriterionPagesRead, 10, base)
	seedBadge(t, gdb, "Page Turner", domain.CriterionPagesRead, 100, base.Add(time.Minute))

	record, err := svc.UpdateProgress(ctx, user.ID, domain.CriterionPagesRead, 4)
	require.NoError(t, err)
	require.Equal(t, older.ID, record.BadgeID)
}

func TestListEarned_LivePartitionIgnoresFrozenStamp(t *testing.T) {
	svc, gdb, ctx := newAchievementService(t)
	user := seedUser(t, gdb, "zoe@example.com")
	seedBadge(t, gdb, "Bookworm", domain.CriterionBooksRead, 5, time.Now().UTC())

	_, err := svc.UpdateProgress(ctx, user.ID, domain.CriterionBooksRead, 5)
	require.NoError(t, err)

	earned, err := svc.ListEarned(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, earned, 1)
	require.True(t, earned[0].Earned)
	require.Equal(t, 100, earned[0].ProgressPercentage)

	inProgress, err := svc.ListInProgress(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, inProgress)

	// Drop below threshold: the badge moves to the in-progress partition even
	// though earned_at stays stamped.
	record, err := svc.UpdateProgress(ctx, user.ID, domain.CriterionBooksRead, 2)
	require.NoError(t, err)
	require.NotNil(t, record.EarnedAt)

	earned, err = svc.ListEarned(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, earned)

	inProgress, err = svc.ListInProgress(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, inProgress, 1)
	require.False(t, inProgress[0].Earned)
	require.Equal(t, 40, inProgress[0].ProgressPercentage)
	require.NotNil(t, inProgress[0].Record.EarnedAt)
}

func TestProgressPercentage_Bounds(t *testing.T) {
	cases := []struct {
		progress, threshold, want int
	}{
		{0, 10, 0},
		{3, 10, 30},
		{10, 10, 100},
		{25, 10, 100},
		{5, 0, 0},
		{5, -1, 0},
		{-2, 10, 0},
	}
	for _, tc := range cases {
		if got := ProgressPercentage(tc.progress, tc.threshold); got != tc.want {
			t.Fatalf("ProgressPercentage(%d, %d) = %d, want %d", tc.progress, tc.threshold, got, tc.want)
		}
	}
}
