package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jacobe603/quote-builder/internal/config"
	"github.com/jacobe603/quote-builder/internal/logger"
	"github.com/jacobe603/quote-builder/internal/observability/tracing"
	quotedomain "github.com/jacobe603/quote-builder/internal/quote/domain"
	referencedomain "github.com/jacobe603/quote-builder/internal/reference/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, log *zap.Logger) *gin.Engine {
	if !cfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(log.Named("http"), classifyErrorForLog))
	r.Use(tracing.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine   *gin.Engine
	cfg      config.Config
	quoteSvc quotedomain.Service
	refrepo  referencedomain.Repository
}

type ServerParams struct {
	fx.In

	Gin      *gin.Engine
	Cfg      config.Config
	QuoteSvc quotedomain.Service
	Refrepo  referencedomain.Repository
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:   p.Gin,
		cfg:      p.Cfg,
		quoteSvc: p.QuoteSvc,
		refrepo:  p.Refrepo,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	api.GET("/suppliers", s.ListSuppliers)
	api.GET("/manufacturers", s.ListManufacturers)
	api.GET("/equipment-types", s.ListEquipmentTypes)

	// -------- Quote --------
	api.GET("/quote", s.GetQuote)
	api.GET("/quote/totals", s.GetQuoteTotals)
	api.PUT("/quote/project", s.UpdateProjectInfo)

	// -------- Packages --------
	api.POST("/packages", s.CreatePackage)
	api.PATCH("/packages/:id", s.UpdatePackage)
	api.DELETE("/packages/:id", s.DeletePackage)
	api.POST("/packages/:id/move", s.MovePackage)
	api.POST("/packages/:id/groups", s.CreateGroup)

	// -------- Groups --------
	api.PATCH("/groups/:id", s.UpdateGroup)
	api.DELETE("/groups/:id", s.DeleteGroup)

	// -------- Line items --------
	api.POST("/containers/:id/lines", s.CreatePrimaryLine)
	api.POST("/lines/:id/sublines", s.CreateSubLine)
	api.PATCH("/lines/:id", s.UpdateLineItem)
	api.DELETE("/lines/:id", s.DeleteLineItem)
	api.POST("/lines/:id/move", s.MoveLineItem)
}
