package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/readling/readling-backend/internal/domain"
)

// Validation failures are client errors surfaced to the caller; none of them
// is ever recorded as an attempt.
var (
	ErrMalformedSubmission    = errors.New("malformed submission")
	ErrUnknownOption          = errors.New("unknown option")
	ErrUnknownSequenceElement = errors.New("unknown sequence element")
	ErrInvalidDefinition      = errors.New("invalid activity definition")
)

// Submission is a learner's answer payload. Sequence and checkpoint activities
// fill OrderedOptionIDs; quiz activities fill SelectedOptionID.
type Submission struct {
	OrderedOptionIDs []uuid.UUID `json:"ordered_option_ids,omitempty"`
	SelectedOptionID *uuid.UUID  `json:"selected_option_id,omitempty"`
}

// Verdict is the validator's decision. CorrectOrder carries the canonical
// sequence when a sequence-kind submission is correct.
type Verdict struct {
	Correct      bool        `json:"correct"`
	CorrectOrder []uuid.UUID `json:"correct_order,omitempty"`
}

// ValidateSubmission compares a submission against an activity definition. It
// is a pure decision function: no state, no persistence.
func ValidateSubmission(activity *domain.Activity, sub Submission) (Verdict, error) {
	if activity == nil {
		return Verdict{}, ErrInvalidDefinition
	}
	switch activity.Kind {
	case domain.ActivityKindSequence, domain.ActivityKindCheckpoint:
		return validateSequence(activity, sub)
	case domain.ActivityKindQuiz:
		return validateQuiz(activity, sub)
	default:
		return Verdict{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidDefinition, activity.Kind)
	}
}

func validateSequence(activity *domain.Activity, sub Submission) (Verdict, error) {
	if len(sub.OrderedOptionIDs) == 0 {
		return Verdict{}, ErrMalformedSubmission
	}

	canonical, err := CanonicalOrder(activity)
	if err != nil {
		return Verdict{}, err
	}

	known := make(map[uuid.UUID]struct{}, len(activity.Options))
	for _, opt := range activity.Options {
		known[opt.ID] = struct{}{}
	}
	for _, id := range sub.OrderedOptionIDs {
		if _, ok := known[id]; !ok {
			return Verdict{}, fmt.Errorf("%w: %s", ErrUnknownSequenceElement, id)
		}
	}

	// Exact ordered equality: same length, same ids, same order. No partial credit.
	if len(sub.OrderedOptionIDs) != len(canonical) {
		return Verdict{Correct: false}, nil
	}
	for i, id := range sub.OrderedOptionIDs {
		if id != canonical[i] {
			return Verdict{Correct: false}, nil
		}
	}
	return Verdict{Correct: true, CorrectOrder: canonical}, nil
}

func validateQuiz(activity *domain.Activity, sub Submission) (Verdict, error) {
	if sub.SelectedOptionID == nil || *sub.SelectedOptionID == uuid.Nil {
		return Verdict{}, ErrMalformedSubmission
	}

	correctCount := 0
	var selected *domain.ActivityOption
	for _, opt := range activity.Options {
		if opt.IsCorrect {
			correctCount++
		}
		if opt.ID == *sub.SelectedOptionID {
			selected = opt
		}
	}
	if correctCount != 1 {
		return Verdict{}, fmt.Errorf("%w: quiz must have exactly one correct option, has %d", ErrInvalidDefinition, correctCount)
	}
	if selected == nil {
		// A nonexistent option is a client error, not an incorrect attempt.
		return Verdict{}, fmt.Errorf("%w: %s", ErrUnknownOption, *sub.SelectedOptionID)
	}
	return Verdict{Correct: selected.IsCorrect}, nil
}

// CanonicalOrder derives the correct sequence from the option arena: options
// carrying a correct position, sorted by it. Positions must be distinct and
// contiguous from 1.
func CanonicalOrder(activity *domain.Activity) ([]uuid.UUID, error) {
	type element struct {
		id  uuid.UUID
		pos int
	}
	var elements []element
	for _, opt := range activity.Options {
		if opt.CorrectPosition != nil {
			elements = append(elements, element{id: opt.ID, pos: *opt.CorrectPosition})
		}
	}
	if len(elements) == 0 {
		return nil, fmt.Errorf("%w: no ordered options", ErrInvalidDefinition)
	}
	sort.Slice(elements, func(i, j int) bool { return elements[i].pos < elements[j].pos })

	order := make([]uuid.UUID, 0, len(elements))
	for i, el := range elements {
		if el.pos != i+1 {
			return nil, fmt.Errorf("%w: correct positions must be 1..%d", ErrInvalidDefinition, len(elements))
		}
		order = append(order, el.id)
	}
	return order, nil
}
