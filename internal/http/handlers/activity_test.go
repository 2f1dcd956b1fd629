package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/readling/readling-backend/internal/domain"
	"github.com/readling/readling-backend/internal/http/middleware"
	pkgerrors "github.com/readling/readling-backend/internal/pkg/errors"
	"github.com/readling/readling-backend/internal/platform/apierr"
	"github.com/readling/readling-backend/internal/platform/logger"
	"github.com/readling/readling-backend/internal/services"
)

type stubActivityService struct {
	submitResult *services.SubmitResult
	submitErr    error
	lastUser     uuid.UUID
	lastActivity uuid.UUID
	lastSub      services.Submission
}

func (s *stubActivityService) Get(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	return nil, pkgerrors.ErrNotFound
}

func (s *stubActivityService) ListByBook(ctx context.Context, bookID uuid.UUID) ([]*domain.Activity, error) {
	return nil, nil
}

func (s *stubActivityService) Submit(ctx context.Context, userID, activityID uuid.UUID, sub services.Submission) (*services.SubmitResult, error) {
	s.lastUser = userID
	s.lastActivity = activityID
	s.lastSub = sub
	return s.submitResult, s.submitErr
}

func (s *stubActivityService) Status(ctx context.Context, userID, activityID uuid.UUID) (*services.AttemptStatus, error) {
	return &services.AttemptStatus{}, nil
}

func newSubmitRouter(t *testing.T, svc services.ActivityService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	h := NewActivityHandler(log, svc)
	r := gin.New()
	api := r.Group("/api")
	api.Use(middleware.ResolveStudent())
	api.POST("/activities/:id/attempts", h.Submit)
	return r
}

func TestSubmitHandler_RequiresStudentHeader(t *testing.T) {
	r := newSubmitRouter(t, &stubActivityService{})

	req := httptest.NewRequest(http.MethodPost, "/api/activities/"+uuid.NewString()+"/attempts", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without X-Student-ID, got %d", w.Code)
	}
}

func TestSubmitHandler_PassesIdentityAndBody(t *testing.T) {
	remaining := 2
	stub := &stubActivityService{
		submitResult: &services.SubmitResult{
			Verdict:           services.Verdict{Correct: true},
			AttemptID:         uuid.New(),
			AttemptsRemaining: &remaining,
		},
	}
	r := newSubmitRouter(t, stub)

	studentID := uuid.New()
	activityID := uuid.New()
	optionID := uuid.New()
	body, _ := json.Marshal(map[string]interface{}{
		"ordered_option_ids": []string{optionID.String()},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/activities/"+activityID.String()+"/attempts", bytes.NewBuffer(body))
	req.Header.Set("X-Student-ID", studentID.String())
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if stub.lastUser != studentID || stub.lastActivity != activityID {
		t.Fatalf("handler must pass header identity and path id through")
	}
	if len(stub.lastSub.OrderedOptionIDs) != 1 || stub.lastSub.OrderedOptionIDs[0] != optionID {
		t.Fatalf("handler must bind the submission body, got %+v", stub.lastSub)
	}

	var payload struct {
		Correct           bool `json:"correct"`
		AttemptsRemaining *int `json:"attempts_remaining"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !payload.Correct {
		t.Fatalf("verdict lost in the response: %s", w.Body.String())
	}
	if payload.AttemptsRemaining == nil || *payload.AttemptsRemaining != 2 {
		t.Fatalf("attempts remaining lost in the response: %s", w.Body.String())
	}
}

func TestSubmitHandler_UsesStatusCarryingErrors(t *testing.T) {
	r := newSubmitRouter(t, &stubActivityService{
		submitErr: apierr.New(http.StatusForbidden, "activity_locked", nil),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/activities/"+uuid.NewString()+"/attempts", bytes.NewBufferString(`{}`))
	req.Header.Set("X-Student-ID", uuid.NewString())
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status on the error must win, got %d", w.Code)
	}
}

func TestSubmitHandler_MapsGateConflict(t *testing.T) {
	r := newSubmitRouter(t, &stubActivityService{submitErr: pkgerrors.ErrNoAttemptsRemaining})

	req := httptest.NewRequest(http.MethodPost, "/api/activities/"+uuid.NewString()+"/attempts", bytes.NewBufferString(`{}`))
	req.Header.Set("X-Student-ID", uuid.NewString())
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for exhausted attempts, got %d", w.Code)
	}
}
