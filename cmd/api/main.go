package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cachepkg "github.com/fluxoapp/fluxo-api/internal/cache"
	"github.com/fluxoapp/fluxo-api/internal/config"
	dbpkg "github.com/fluxoapp/fluxo-api/internal/db"
	"github.com/fluxoapp/fluxo-api/internal/logger"
	"github.com/fluxoapp/fluxo-api/internal/middleware"
	"github.com/fluxoapp/fluxo-api/internal/routes"
)

func main() {

	cfg := config.Load()
	log := logger.New(cfg.AppEnv)

	db := dbpkg.NewDB(cfg)

	c, err := cachepkg.New(cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis indisponível, seguindo sem cache")
		c = nil
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, c, cfg, log)

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
