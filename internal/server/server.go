package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/Iterio-app/Iterio-Platform-sub000/internal/config"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/observability/logger"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/observability/metrics"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/observability/tracing"
	presdomain "github.com/Iterio-app/Iterio-Platform-sub000/internal/presentation/domain"
	pubservice "github.com/Iterio-app/Iterio-Platform-sub000/internal/publication/service"
	quotedomain "github.com/Iterio-app/Iterio-Platform-sub000/internal/quote/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// documentCoordinator is the slice of the publication coordinator the
// handlers consume.
type documentCoordinator interface {
	Preview(ctx context.Context, quoteID snowflake.ID, data quotedomain.QuoteData, presentation quotedomain.PresentationConfig) (pubservice.PreviewResult, error)
	Download(ctx context.Context, quoteID snowflake.ID) (pubservice.DownloadResult, error)
	PublishClientRendered(ctx context.Context, quoteID snowflake.ID, pdf []byte) (string, error)
}

// Server owns the HTTP surface of the quote document pipeline.
type Server struct {
	cfg         config.Config
	log         *zap.Logger
	db          *gorm.DB
	engine      *gin.Engine
	genID       *snowflake.Node
	quotes      quotedomain.Repository
	coordinator documentCoordinator
	templates   presdomain.Service
}

type Params struct {
	fx.In

	Config      config.Config
	Log         *zap.Logger
	DB          *gorm.DB
	Engine      *gin.Engine
	GenID       *snowflake.Node
	Quotes      quotedomain.Repository
	Coordinator *pubservice.Coordinator
	Templates   presdomain.Service
}

// NewEngine builds the gin engine with the shared middleware chain.
func NewEngine(cfg config.Config, log *zap.Logger, httpMetrics *metrics.HTTPMetrics) *gin.Engine {
	if cfg.Environment != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		logger.GinMiddleware(logger.MiddlewareConfig{
			SkipPaths: []string{"/healthz", "/metrics"},
		}),
		tracing.GinMiddleware(),
		metrics.GinMiddleware(httpMetrics),
	)
	return engine
}

func NewServer(p Params) *Server {
	return &Server{
		cfg:         p.Config,
		log:         p.Log.Named("server"),
		db:          p.DB,
		engine:      p.Engine,
		genID:       p.GenID,
		quotes:      p.Quotes,
		coordinator: p.Coordinator,
		templates:   p.Templates,
	}
}

func (s *Server) RegisterAPIRoutes() {
	s.engine.GET("/healthz", s.Healthz)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.engine.Group("/api")

	api.POST("/quotes", s.CreateQuote)
	api.GET("/quotes/:id", s.GetQuote)
	api.PUT("/quotes/:id", s.UpdateQuote)

	api.POST("/quotes/preview", s.PreviewQuote)
	api.GET("/quotes/:id/document", s.DownloadDocument)
	api.POST("/quotes/:id/document", s.PublishDocument)

	api.POST("/presentation-templates", s.CreatePresentationTemplate)
	api.GET("/presentation-templates", s.ListPresentationTemplates)
	api.GET("/presentation-templates/:id", s.GetPresentationTemplate)
	api.PATCH("/presentation-templates/:id", s.UpdatePresentationTemplate)
	api.POST("/presentation-templates/:id/default", s.SetDefaultPresentationTemplate)
}

// RunHTTP binds the engine to the configured address under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down http server")
			return srv.Shutdown(ctx)
		},
	})
}
