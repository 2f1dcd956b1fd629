package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/readling/readling-backend/internal/http/handlers"
	httpMW "github.com/readling/readling-backend/internal/http/middleware"
)

type RouterConfig struct {
	HealthHandler   *httpH.HealthHandler
	ActivityHandler *httpH.ActivityHandler
	ProgressHandler *httpH.ProgressHandler
	BadgeHandler    *httpH.BadgeHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	api.Use(httpMW.ResolveStudent())
	{
		// Activities + attempts
		if cfg.ActivityHandler != nil {
			api.GET("/books/:id/activities", cfg.ActivityHandler.ListByBook)
			api.GET("/activities/:id", cfg.ActivityHandler.Get)
			api.POST("/activities/:id/attempts", cfg.ActivityHandler.Submit)
			api.GET("/activities/:id/attempts/status", cfg.ActivityHandler.Status)
		}

		// Reading progress
		if cfg.ProgressHandler != nil {
			api.POST("/progress/start", cfg.ProgressHandler.StartReading)
			api.PATCH("/progress/:id", cfg.ProgressHandler.UpdateProgress)
			api.POST("/progress/:id/complete", cfg.ProgressHandler.Complete)
			api.PATCH("/progress/:id/skills", cfg.ProgressHandler.UpdateSkillScore)
			api.GET("/students/:id/progress", cfg.ProgressHandler.StudentSummary)
			api.GET("/students/:id/progress/books/:bookId", cfg.ProgressHandler.GetByStudentAndBook)
		}

		// Badges
		if cfg.BadgeHandler != nil {
			api.GET("/students/:id/badges", cfg.BadgeHandler.ListForStudent)
			api.POST("/students/:id/badges/progress", cfg.BadgeHandler.UpdateProgress)
		}
	}

	return r
}
