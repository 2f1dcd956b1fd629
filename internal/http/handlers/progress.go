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

type ProgressHandler struct {
	log      *logger.Logger
	progress services.ProgressService
}

func NewProgressHandler(log *logger.Logger, progress services.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		log:      log.With("handler", "ProgressHandler"),
		progress: progress,
	}
}

type startReadingRequest struct {
	BookID uuid.UUID `json:"book_id" binding:"required"`
}

// POST /api/progress/start
// Idempotent: re-starting a book returns the existing tracker unchanged.
func (h *ProgressHandler) StartReading(c *gin.Context) {
	studentID := middleware.StudentID(c)
	if studentID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "missing_student_id", nil)
		return
	}

	var req startReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_json", err)
		return
	}

	record, err := h.progress.StartReading(c.Request.Context(), studentID, req.BookID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, record)
}

type updateProgressRequest struct {
	PageNumber        int `json:"page_number"`
	AdditionalSeconds int `json:"additional_seconds"`
}

// PATCH /api/progress/:id
func (h *ProgressHandler) UpdateProgress(c *gin.Context) {
	trackerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_tracker_id", err)
		return
	}

	var req updateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_json", err)
		return
	}

	record, err := h.progress.UpdateProgress(c.Request.Context(), trackerID, req.PageNumber, req.AdditionalSeconds)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, record)
}

// POST /api/progress/:id/complete
func (h *ProgressHandler) Complete(c *gin.Context) {
	trackerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_tracker_id", err)
		return
	}

	record, err := h.progress.Complete(c.Request.Context(), trackerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, record)
}

type skillScoreRequest struct {
	Skill           string                 `json:"skill" binding:"required"`
	Score           float64                `json:"score"`
	NewWordsLearned int                    `json:"new_words_learned,omitempty"`
	Breakdown       map[string]interface{} `json:"breakdown,omitempty"`
}

// PATCH /api/progress/:id/skills
func (h *ProgressHandler) UpdateSkillScore(c *gin.Context) {
	trackerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_tracker_id", err)
		return
	}

	var req skillScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_json", err)
		return
	}

	record, err := h.progress.UpdateSkillScore(c.Request.Context(), trackerID, req.Skill, req.Score, services.SkillScoreUpdate{
		NewWordsLearned: req.NewWordsLearned,
		Breakdown:       req.Breakdown,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, record)
}

// GET /api/students/:id/progress
func (h *ProgressHandler) StudentSummary(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_student_id", err)
		return
	}

	summary, err := h.progress.Summary(c.Request.Context(), studentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, summary)
}

// GET /api/students/:id/progress/books/:bookId
func (h *ProgressHandler) GetByStudentAndBook(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_student_id", err)
		return
	}
	bookID, err := uuid.Parse(c.Param("bookId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_book_id", err)
		return
	}

	record, err := h.progress.GetByUserAndBook(c.Request.Context(), studentID, bookID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, record)
}
