package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/readling/readling-backend/internal/data/repos/testutil"
	"github.com/readling/readling-backend/internal/domain"
)

func TestUserBadgeRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserBadgeRepo(db, testutil.Logger(t))
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "userbadgerepo@example.com")
	badge := testutil.SeedBadge(t, ctx, tx, domain.CriterionBooksRead, 5, time.Now().UTC())

	first := &domain.UserBadge{ID: uuid.New(), UserID: user.ID, BadgeID: badge.ID}
	if err := repo.InsertIgnoreDuplicate(ctx, tx, first); err != nil {
		t.Fatalf("InsertIgnoreDuplicate: %v", err)
	}
	if err := repo.InsertIgnoreDuplicate(ctx, tx, &domain.UserBadge{
		ID: uuid.New(), UserID: user.ID, BadgeID: badge.ID,
	}); err != nil {
		t.Fatalf("InsertIgnoreDuplicate (dupe): %v", err)
	}

	record, err := repo.GetByUserAndBadge(ctx, tx, user.ID, badge.ID)
	if err != nil {
		t.Fatalf("GetByUserAndBadge: %v", err)
	}
	if record.ID != first.ID {
		t.Fatalf("duplicate insert must keep the original row, got %s want %s", record.ID, first.ID)
	}

	now := time.Now().UTC()
	if err := repo.UpdateFields(ctx, tx, record.ID, map[string]interface{}{
		"current_progress": 5,
		"earned_at":        now,
	}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}

	rows, err := repo.GetByUserID(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("GetByUserID: expected 1 row, got %d", len(rows))
	}
	if rows[0].CurrentProgress != 5 || rows[0].EarnedAt == nil {
		t.Fatalf("GetByUserID: update not visible: %+v", rows[0])
	}
	if rows[0].Badge == nil || rows[0].Badge.ID != badge.ID {
		t.Fatalf("GetByUserID: expected badge definition preloaded")
	}
}

func TestBadgeRepoCriterionOrder(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewBadgeRepo(db, testutil.Logger(t))
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	older := testutil.SeedBadge(t, ctx, tx, domain.CriterionActivitiesCleared, 10, base)
	testutil.SeedBadge(t, ctx, tx, domain.CriterionActivitiesCleared, 50, base.Add(time.Minute))

	badges, err := repo.GetByCriterion(ctx, tx, domain.CriterionActivitiesCleared)
	if err != nil {
		t.Fatalf("GetByCriterion: %v", err)
	}
	if len(badges) != 2 {
		t.Fatalf("GetByCriterion: expected 2 badges, got %d", len(badges))
	}
	if badges[0].ID != older.ID {
		t.Fatalf("GetByCriterion: expected creation order, oldest first")
	}
}
