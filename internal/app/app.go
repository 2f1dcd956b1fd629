package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/readling/readling-backend/internal/data/db"
	"github.com/readling/readling-backend/internal/platform/cache"
	"github.com/readling/readling-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services

	badgeCache *cache.RedisCache
}

func New() (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	log.Info("Configuration loaded", "http_addr", cfg.HTTPAddr)

	pg, err := db.NewPostgresService(log, cfg.Postgres)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	theDB := pg.DB()
	if cfg.AutoMigrate {
		if err := db.AutoMigrateAll(theDB); err != nil {
			log.Sync()
			return nil, fmt.Errorf("postgres automigrate: %w", err)
		}
	}

	// Redis is optional; without it the badge cache degrades to DB reads.
	var badgeCache *cache.RedisCache
	if cfg.RedisAddr != "" {
		badgeCache, err = cache.NewRedisCache(log, cfg.RedisAddr, cfg.BadgeCacheTTL)
		if err != nil {
			log.Warn("redis cache init failed, continuing without it", "error", err)
			badgeCache = nil
		}
	}

	var badgeCacheIface cache.Cache
	if badgeCache != nil {
		badgeCacheIface = badgeCache
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, badgeCacheIface)
	handlerset := wireHandlers(log, serviceset)
	router := wireRouter(handlerset)

	return &App{
		Log:        log,
		DB:         theDB,
		Router:     router,
		Cfg:        cfg,
		Repos:      reposet,
		Services:   serviceset,
		badgeCache: badgeCache,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(a.Cfg.HTTPAddr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.badgeCache != nil {
		_ = a.badgeCache.Close()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
