package app

import (
	"github.com/gin-gonic/gin"

	"github.com/readling/readling-backend/internal/http"
	httpH "github.com/readling/readling-backend/internal/http/handlers"
	"github.com/readling/readling-backend/internal/platform/logger"
)

type Handlers struct {
	Health   *httpH.HealthHandler
	Activity *httpH.ActivityHandler
	Progress *httpH.ProgressHandler
	Badge    *httpH.BadgeHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   httpH.NewHealthHandler(),
		Activity: httpH.NewActivityHandler(log, services.Activity),
		Progress: httpH.NewProgressHandler(log, services.Progress),
		Badge:    httpH.NewBadgeHandler(log, services.Achievement),
	}
}

func wireRouter(handlers Handlers) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		HealthHandler:   handlers.Health,
		ActivityHandler: handlers.Activity,
		ProgressHandler: handlers.Progress,
		BadgeHandler:    handlers.Badge,
	})
}
