package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/readling/readling-backend/internal/http/middleware"
	"github.com/readling/readling-backend/internal/http/response"
	"github.com/readling/readling-backend/internal/platform/logger"
	"github.com/readling/readling-backend/internal/services"
)

type ActivityHandler struct {
	log        *logger.Logger
	activities services.ActivityService
}

func NewActivityHandler(log *logger.Logger, activities services.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		log:        log.With("handler", "ActivityHandler"),
		activities: activities,
	}
}

// GET /api/books/:id/activities
func (h *ActivityHandler) ListByBook(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_book_id", err)
		return
	}
	activities, err := h.activities.ListByBook(c.Request.Context(), bookID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"activities": activities})
}

// GET /api/activities/:id
func (h *ActivityHandler) Get(c *gin.Context) {
	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_activity_id", err)
		return
	}
	activity, err := h.activities.Get(c.Request.Context(), activityID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, activity)
}

// POST /api/activities/:id/attempts
// Submit an answer; returns the verdict plus attempts remaining for bounded
// activities.
func (h *ActivityHandler) Submit(c *gin.Context) {
	studentID := middleware.StudentID(c)
	if studentID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "missing_student_id", nil)
		return
	}
	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_activity_id", err)
		return
	}

	var sub services.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_json", err)
		return
	}

	result, err := h.activities.Submit(c.Request.Context(), studentID, activityID, sub)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, result)
}

// GET /api/activities/:id/attempts/status
func (h *ActivityHandler) Status(c *gin.Context) {
	studentID := middleware.StudentID(c)
	if studentID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "missing_student_id", nil)
		return
	}
	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_activity_id", err)
		return
	}

	status, err := h.activities.Status(c.Request.Context(), studentID, activityID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, status)
}
