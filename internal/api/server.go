package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"signal-engine/internal/auth"
	"signal-engine/internal/cache"
	"signal-engine/internal/database"
	"signal-engine/internal/engine"
	"signal-engine/internal/events"
)

// RateLimiter provides simple in-memory rate limiting per endpoint
type RateLimiter struct {
	requests map[string][]time.Time
	mu       sync.Mutex
	limit    int           // max requests
	window   time.Duration // time window
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
	}
}

// Allow checks if a request is allowed for the given key
func (r *RateLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-r.window)

	var recent []time.Time
	for _, t := range r.requests[key] {
		if t.After(windowStart) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= r.limit {
		r.requests[key] = recent
		return false
	}

	r.requests[key] = append(recent, now)
	return true
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host           string `json:"host"`
	Port           int    `json:"port"`
	ProductionMode bool   `json:"production_mode"`
	AuthEnabled    bool   `json:"auth_enabled"`
	JWTSecret      string `json:"jwt_secret"`
}

// Server represents the HTTP API server
type Server struct {
	router      *gin.Engine
	httpServer  *http.Server
	config      ServerConfig
	runner      *engine.Runner
	repo        *database.SignalRepository // nil when persistence is disabled
	signalCache *cache.SignalCache         // nil when caching is disabled
	jwtManager  *auth.JWTManager
	rateLimiter *RateLimiter
	hub         *WSHub
	logger      zerolog.Logger
}

// NewServer creates a new API server. repo and signalCache may be nil.
func NewServer(
	config ServerConfig,
	runner *engine.Runner,
	repo *database.SignalRepository,
	signalCache *cache.SignalCache,
	bus *events.EventBus,
	logger zerolog.Logger,
) *Server {
	if config.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		router:      gin.New(),
		config:      config,
		runner:      runner,
		repo:        repo,
		signalCache: signalCache,
		rateLimiter: NewRateLimiter(60, time.Minute),
		hub:         NewWSHub(logger),
		logger:      logger.With().Str("component", "APIServer").Logger(),
	}

	if config.AuthEnabled {
		s.jwtManager = auth.NewJWTManager(config.JWTSecret, 24*time.Hour)
	}

	// Stream every emitted signal to websocket subscribers.
	bus.Subscribe(events.EventSignalGenerated, s.hub.BroadcastEvent)
	bus.Subscribe(events.EventSignalRejected, s.hub.BroadcastEvent)

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(gin.Recovery())
	s.router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	s.router.GET("/health", s.handleHealth)
	s.router.GET("/ws", s.handleWebSocket)

	v1 := s.router.Group("/api/v1")
	if s.config.AuthEnabled {
		v1.Use(auth.Middleware(s.jwtManager))
	}
	v1.Use(s.rateLimitMiddleware())

	v1.POST("/analyze", s.handleAnalyze)
	v1.GET("/signals/latest/:symbol", s.handleLatestSignal)
	v1.GET("/signals/history/:symbol", s.handleSignalHistory)
	v1.GET("/rejections/:symbol", s.handleRejectionHistory)
}

func (s *Server) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP() + ":" + c.FullPath()
		if !s.rateLimiter.Allow(key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}

// Start begins serving HTTP requests. Blocks until the listener fails.
func (s *Server) Start() error {
	go s.hub.Run()

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	s.logger.Info().Str("addr", addr).Msg("API server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
