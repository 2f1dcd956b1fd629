package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/readling/readling-backend/internal/http/response"
	"github.com/readling/readling-backend/internal/platform/logger"
	"github.com/readling/readling-backend/internal/services"
)

type BadgeHandler struct {
	log          *logger.Logger
	achievements services.AchievementService
}

func NewBadgeHandler(log *logger.Logger, achievements services.AchievementService) *BadgeHandler {
	return &BadgeHandler{
		log:          log.With("handler", "BadgeHandler"),
		achievements: achievements,
	}
}

// GET /api/students/:id/badges
func (h *BadgeHandler) ListForStudent(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_student_id", err)
		return
	}

	earned, err := h.achievements.ListEarned(c.Request.Context(), studentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	inProgress, err := h.achievements.ListInProgress(c.Request.Context(), studentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"earned":      earned,
		"in_progress": inProgress,
	})
}

type badgeProgressRequest struct {
	Criterion string `json:"criterion" binding:"required"`
	Value     int    `json:"value"`
}

// POST /api/students/:id/badges/progress
// Value is the absolute cumulative figure (e.g. total books read), not a delta.
func (h *BadgeHandler) UpdateProgress(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_student_id", err)
		return
	}

	var req badgeProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_json", err)
		return
	}

	record, err := h.achievements.UpdateProgress(c.Request.Context(), studentID, req.Criterion, req.Value)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, record)
}
