package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/basedcaster/core/internal/config"
	"github.com/basedcaster/core/internal/middleware"
	"github.com/basedcaster/core/internal/modules/gallery"
	"github.com/basedcaster/core/internal/modules/persona"
	"github.com/basedcaster/core/internal/modules/processing/ai"
	"github.com/basedcaster/core/internal/modules/tweets"
	pkgcron "github.com/basedcaster/core/internal/pkg/cron"
	"github.com/basedcaster/core/internal/pkg/metrics"
	pkgredis "github.com/basedcaster/core/internal/pkg/redis"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// App holds all application dependencies.
type App struct {
	cfg     *config.AppConfig
	router  *gin.Engine
	logger  *zap.Logger
	redis   *pkgredis.Client
	metrics *metrics.Collector
	sched   *pkgcron.Scheduler
	cancel  context.CancelFunc
	aiInfo  aiInfo
	started time.Time
}

const gallerySweepInterval = time.Hour

type aiInfo struct {
	Enabled  bool   `json:"enabled"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// New initializes the application: Redis (optional) → services → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var rc *pkgredis.Client
	if cfg.RedisURL != "" {
		var err error
		rc, err = pkgredis.Connect(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	collector := metrics.New()
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(collector.Middleware())
	router.Use(cors.New(corsConfig(cfg)))

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		cfg:     cfg,
		router:  router,
		logger:  logger,
		redis:   rc,
		metrics: collector,
		sched:   pkgcron.New(logger.Named("CronService")),
		cancel:  cancel,
		started: time.Now(),
	}
	app.registerRoutes(app.buildServices())
	app.sched.Start(ctx)
	return app, nil
}

type services struct {
	persona *persona.Service
	gallery *gallery.Service
}

func (a *App) buildServices() services {
	fetcherOpts := []tweets.Option{tweets.WithLogger(a.logger.Named("tweets"))}
	if a.redis != nil && a.cfg.Tweets.CacheTTL() > 0 {
		fetcherOpts = append(fetcherOpts, tweets.WithCache(tweets.NewRedisPageCache(a.redis, a.cfg.Tweets.CacheTTL())))
	}
	fetcher := tweets.NewFetcher(a.cfg.Tweets, fetcherOpts...)

	// A nil interface, not a typed nil, tells the persona service AI is off.
	var gen ai.Generator
	client, err := ai.NewClient(a.cfg.AI)
	switch {
	case err == nil:
		gen = client
		a.aiInfo = aiInfo{Enabled: true, Provider: client.Provider(), Model: client.Model()}
		a.logger.Info("AI enabled",
			zap.String("provider", client.Provider()),
			zap.String("model", client.Model()),
			zap.Bool("jsonMode", client.SupportsJSONMode()),
		)
	case errors.Is(err, ai.ErrDisabled):
		a.aiInfo = aiInfo{Provider: a.cfg.AI.Provider, Model: a.cfg.AI.Model}
		a.logger.Warn("AI api key is empty, analysis will fall back to defaults")
	default:
		a.logger.Warn("AI client unavailable", zap.Error(err))
	}

	var store gallery.Store
	if a.redis != nil {
		store = gallery.NewRedisStore(a.redis, a.cfg.Gallery.TTL())
	} else {
		mem := gallery.NewMemoryStore(a.cfg.Gallery.TTL())
		a.sched.Register(pkgcron.Job{
			Name:     "sweep_gallery",
			Interval: gallerySweepInterval,
			Fn: func(context.Context) error {
				if n := mem.Sweep(); n > 0 {
					a.logger.Info("expired galleries removed", zap.Int("count", n))
				}
				return nil
			},
		})
		store = mem
	}

	personaSvc := persona.NewService(fetcher, gen, a.logger.Named("persona"))
	personaSvc.SetObserver(a.metrics)

	return services{
		persona: personaSvc,
		gallery: gallery.NewService(store,
			gallery.WithLimit(a.cfg.Gallery.Limit),
			gallery.WithLogger(a.logger.Named("gallery")),
		),
	}
}

func corsConfig(cfg *config.AppConfig) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", gallery.DeviceHeader, middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", gallery.DeviceHeader, middleware.RequestIDHeader},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		patterns := cfg.AllowedOrigins
		c.AllowOriginFunc = func(origin string) bool {
			host := extractOriginHost(origin)
			for _, pattern := range patterns {
				if matchOriginPattern(pattern, host) {
					return true
				}
			}
			return false
		}
	} else {
		c.AllowOriginFunc = func(origin string) bool { return true }
	}
	return c
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown stops background jobs and releases the Redis pool, if any.
func (a *App) Shutdown() {
	a.cancel()
	if a.redis == nil {
		return
	}
	if err := a.redis.Close(); err != nil {
		a.logger.Warn("close redis", zap.Error(err))
	}
}
