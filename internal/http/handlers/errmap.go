package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/readling/readling-backend/internal/http/response"
	pkgerrors "github.com/readling/readling-backend/internal/pkg/errors"
	"github.com/readling/readling-backend/internal/platform/apierr"
	"github.com/readling/readling-backend/internal/services"
)

// respondServiceError maps core errors onto the wire. Store-layer failures
// fall through as a 500; the core performs no retries.
func respondServiceError(c *gin.Context, err error) {
	var apiErr *apierr.Error
	switch {
	case errors.As(err, &apiErr):
		response.RespondError(c, apiErr.Status, apiErr.Code, apiErr.Err)
	case errors.Is(err, services.ErrMalformedSubmission):
		response.RespondError(c, http.StatusBadRequest, "malformed_submission", err)
	case errors.Is(err, services.ErrUnknownOption):
		response.RespondError(c, http.StatusBadRequest, "unknown_option", err)
	case errors.Is(err, services.ErrUnknownSequenceElement):
		response.RespondError(c, http.StatusBadRequest, "unknown_sequence_element", err)
	case errors.Is(err, services.ErrInvalidDefinition):
		response.RespondError(c, http.StatusUnprocessableEntity, "invalid_definition", err)
	case errors.Is(err, pkgerrors.ErrNoAttemptsRemaining):
		response.RespondError(c, http.StatusConflict, "no_attempts_remaining", err)
	case errors.Is(err, pkgerrors.ErrNoBadgeForCriterion):
		response.RespondError(c, http.StatusNotFound, "no_badge_for_criterion", err)
	case errors.Is(err, pkgerrors.ErrNotFound):
		response.RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, pkgerrors.ErrInvalidArgument):
		response.RespondError(c, http.StatusBadRequest, "invalid_argument", err)
	default:
		response.RespondError(c, http.StatusInternalServerError, "internal_error", err)
	}
}
