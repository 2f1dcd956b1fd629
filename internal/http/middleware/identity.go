package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/readling/readling-backend/internal/http/response"
)

const studentIDKey = "studentID"

// ResolveStudent reads the student identity the upstream gateway resolved and
// stashed in the X-Student-ID header. This service never authenticates; it
// trusts the id it is handed.
func ResolveStudent() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("X-Student-ID"))
		if raw == "" {
			response.RespondError(c, http.StatusUnauthorized, "missing_student_id", nil)
			c.Abort()
			return
		}
		id, err := uuid.Parse(raw)
		if err != nil || id == uuid.Nil {
			response.RespondError(c, http.StatusUnauthorized, "invalid_student_id", err)
			c.Abort()
			return
		}
		c.Set(studentIDKey, id)
		c.Next()
	}
}

// StudentID returns the resolved student id, uuid.Nil when absent.
func StudentID(c *gin.Context) uuid.UUID {
	v, ok := c.Get(studentIDKey)
	if !ok {
		return uuid.Nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
