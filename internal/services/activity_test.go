package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/readling/readling-backend/internal/data/repos"
	"github.com/readling/readling-backend/internal/domain"
	pkgerrors "github.com/readling/readling-backend/internal/pkg/errors"
)

// optionIDsByPosition returns the canonical order of a seeded sequence
// activity, skipping distractors.
func optionIDsByPosition(activity *domain.Activity) []uuid.UUID {
	ordered := make([]uuid.UUID, 0, len(activity.Options))
	for _, opt := range activity.Options {
		if opt.CorrectPosition != nil {
			ordered = append(ordered, opt.ID)
		}
	}
	return ordered
}

func TestSubmit_RecordsAttemptAndVerdict(t *testing.T) {
	gdb := testDB(t)
	log := testLogger(t)
	attempts := NewAttemptService(gdb, log, repos.NewAttemptRepo(gdb, log))
	svc := NewActivityService(gdb, log, repos.NewActivityRepo(gdb, log), attempts)
	ctx := context.Background()

	user := seedUser(t, gdb, "sam@example.com")
	book := seedBook(t, gdb, "The Tiny Fox", 12)
	activity := seedSequenceActivity(t, gdb, book.ID, 3, 1, 0)

	sub := Submission{OrderedOptionIDs: optionIDsByPosition(activity)}
	result, err := svc.Submit(ctx, user.ID, activity.ID, sub)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.Correct {
		t.Fatalf("expected correct verdict")
	}
	if result.AttemptsRemaining != nil {
		t.Fatalf("unbounded activity should not report attempts remaining")
	}

	count, err := attempts.Count(ctx, user.ID, activity.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 attempt recorded, got %d", count)
	}

	latest, err := attempts.Latest(ctx, user.ID, activity.ID)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest == nil || latest.ID != result.AttemptID {
		t.Fatalf("latest attempt does not match submitted attempt")
	}
	if !latest.IsCorrect {
		t.Fatalf("ledger verdict should match returned verdict")
	}
}

func TestSubmit_WrongOrderRecordsIncorrectAttempt(t *testing.T) {
	gdb := testDB(t)
	log := testLogger(t)
	attempts := NewAttemptService(gdb, log, repos.NewAttemptRepo(gdb, log))
	svc := NewActivityService(gdb, log, repos.NewActivityRepo(gdb, log), attempts)
	ctx := context.Background()

	user := seedUser(t, gdb, "mia@example.com")
	book := seedBook(t, gdb, "Moon Picnic", 8)
	activity := seedSequenceActivity(t, gdb, book.ID, 3, 0, 0)

	order := optionIDsByPosition(activity)
	order[0], order[1] = order[1], order[0]

	result, err := svc.Submit(ctx, user.ID, activity.ID, Submission{OrderedOptionIDs: order})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Correct {
		t.Fatalf("swapped order must not be correct")
	}
	if len(result.CorrectOrder) != 0 {
		t.Fatalf("incorrect verdict must not leak the correct order")
	}

	latest, err := attempts.Latest(ctx, user.ID, activity.ID)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest == nil || latest.IsCorrect {
		t.Fatalf("expected an incorrect attempt in the ledger")
	}
}

func TestSubmit_BoundedAttemptsGate(t *testing.T) {
	gdb := testDB(t)
	log := testLogger(t)
	attempts := NewAttemptService(gdb, log, repos.NewAttemptRepo(gdb, log))
	svc := NewActivityService(gdb, log, repos.NewActivityRepo(gdb, log), attempts)
	ctx := context.Background()

	user := seedUser(t, gdb, "leo@example.com")
	book := seedBook(t, gdb, "Counting Crabs", 10)
	activity := seedSequenceActivity(t, gdb, book.ID, 2, 0, 2)

	wrong := optionIDsByPosition(activity)
	wrong[0], wrong[1] = wrong[1], wrong[0]

	first, err := svc.Submit(ctx, user.ID, activity.ID, Submission{OrderedOptionIDs: wrong})
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if first.AttemptsRemaining == nil || *first.AttemptsRemaining != 1 {
		t.Fatalf("expected 1 attempt remaining, got %v", first.AttemptsRemaining)
	}

	second, err := svc.Submit(ctx, user.ID, activity.ID, Submission{OrderedOptionIDs: wrong})
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if second.AttemptsRemaining == nil || *second.AttemptsRemaining != 0 {
		t.Fatalf("expected 0 attempts remaining, got %v", second.AttemptsRemaining)
	}

	if _, err := svc.Submit(ctx, user.ID, activity.ID, Submission{OrderedOptionIDs: wrong}); !errors.Is(err, pkgerrors.ErrNoAttemptsRemaining) {
		t.Fatalf("expected ErrNoAttemptsRemaining, got %v", err)
	}

	count, err := attempts.Count(ctx, user.ID, activity.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("rejected submit must not append to the ledger, got %d attempts", count)
	}
}

func TestSubmit_UnknownOptionLeavesNoTrace(t *testing.T) {
	gdb := testDB(t)
	log := testLogger(t)
	attempts := NewAttemptService(gdb, log, repos.NewAttemptRepo(gdb, log))
	svc := NewActivityService(gdb, log, repos.NewActivityRepo(gdb, log), attempts)
	ctx := context.Background()

	user := seedUser(t, gdb, "ava@example.com")
	book := seedBook(t, gdb, "River Songs", 14)
	quiz := seedQuizActivity(t, gdb, book.ID, 3, 1)

	bogus := uuid.New()
	if _, err := svc.Submit(ctx, user.ID, quiz.ID, Submission{SelectedOptionID: &bogus}); !errors.Is(err, ErrUnknownOption) {
		t.Fatalf("expected ErrUnknownOption, got %v", err)
	}

	count, err := attempts.Count(ctx, user.ID, quiz.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("unknown option must not be recorded, got %d attempts", count)
	}
}

func TestStatus_ReflectsLedger(t *testing.T) {
	gdb := testDB(t)
	log := testLogger(t)
	attempts := NewAttemptService(gdb, log, repos.NewAttemptRepo(gdb, log))
	svc := NewActivityService(gdb, log, repos.NewActivityRepo(gdb, log), attempts)
	ctx := context.Background()

	user := seedUser(t, gdb, "kai@example.com")
	book := seedBook(t, gdb, "Little Lighthouse", 20)
	quiz := seedQuizActivity(t, gdb, book.ID, 4, 2)

	empty, err := svc.Status(ctx, user.ID, quiz.ID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if empty.Latest != nil || empty.AttemptCount != 0 {
		t.Fatalf("fresh activity should have an empty status")
	}

	correct := quiz.Options[2].ID
	if _, err := svc.Submit(ctx, user.ID, quiz.ID, Submission{SelectedOptionID: &correct}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	wrongOpt := quiz.Options[0].ID
	if _, err := svc.Submit(ctx, user.ID, quiz.ID, Submission{SelectedOptionID: &wrongOpt}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	status, err := svc.Status(ctx, user.ID, quiz.ID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.AttemptCount != 2 {
		t.Fatalf("expected 2 attempts, got %d", status.AttemptCount)
	}
	if status.Latest == nil || status.Latest.IsCorrect {
		t.Fatalf("latest attempt should be the later, incorrect one")
	}
}

func TestRemaining_FloorsAtZero(t *testing.T) {
	gdb := testDB(t)
	log := testLogger(t)
	attempts := NewAttemptService(gdb, log, repos.NewAttemptRepo(gdb, log))
	ctx := context.Background()

	user := seedUser(t, gdb, "iris@example.com")
	book := seedBook(t, gdb, "Snow Day", 6)
	quiz := seedQuizActivity(t, gdb, book.ID, 2, 0)

	correct := quiz.Options[0].ID
	for i := 0; i < 3; i++ {
		if _, err := attempts.Record(ctx, nil, user.ID, quiz.ID, Submission{SelectedOptionID: &correct}, true); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	remaining, err := attempts.Remaining(ctx, user.ID, quiz.ID, 2)
	if err != nil {
		t.Fatalf("remaining: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("remaining must floor at zero, got %d", remaining)
	}
}
