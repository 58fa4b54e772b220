package main

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/evotodo/task-tracker-api/internal/config"
	"github.com/evotodo/task-tracker-api/internal/database"
	"github.com/evotodo/task-tracker-api/internal/handlers"
	"github.com/evotodo/task-tracker-api/internal/identity"
	"github.com/evotodo/task-tracker-api/internal/middleware"
	"github.com/evotodo/task-tracker-api/internal/repository"
	"github.com/evotodo/task-tracker-api/internal/router"
	"github.com/evotodo/task-tracker-api/internal/services"
)

func main() {
	cfg := config.Load()

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		log.Fatal("failed to connect to database", "err", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatal("failed to run migrations", "err", err)
	}

	db := database.GetDB()
	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)

	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo)
	statsService := services.NewStatsService(taskRepo, cfg.WeekStart, cfg.StatsLocation)

	deps := router.Deps{
		Tasks: handlers.NewTaskHandler(taskService),
		Stats: handlers.NewStatsHandler(statsService),
	}

	// The identity mode is fixed at startup; requests never branch on it.
	switch cfg.AuthMode {
	case config.AuthModeToken:
		tokens := identity.NewTokenResolver(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
		deps.Resolver = tokens
		deps.Auth = handlers.NewAuthHandler(authService, tokens, cfg.AuthMode)
	case config.AuthModeSession:
		store, err := redisStore.NewStore(
			10,
			"tcp",
			cfg.RedisAddr(),
			"",
			"",
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			log.Fatal("failed to create session store", "err", err)
		}
		isProduction := cfg.GinMode == "release"
		store.Options(sessions.Options{
			Path:     "/",
			MaxAge:   86400 * 7,
			HttpOnly: true,
			Secure:   isProduction,
			SameSite: 2, // Lax
		})
		deps.SessionStore = store
		deps.Resolver = identity.NewSessionResolver()
		deps.Auth = handlers.NewAuthHandler(authService, nil, cfg.AuthMode)
	default:
		log.Fatal("unsupported AUTH_MODE", "mode", cfg.AuthMode)
	}

	if cfg.RateLimitPerMinute > 0 {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr()})
		limiter := middleware.NewRateLimiter(client, cfg.RateLimitPerMinute, time.Minute)
		deps.RateLimit = limiter.Handler()
		log.Info("rate limiting enabled", "per_minute", cfg.RateLimitPerMinute)
	}

	r, err := router.New(cfg, deps)
	if err != nil {
		log.Fatal("failed to build router", "err", err)
	}

	log.Info("server starting", "addr", cfg.HTTPAddr, "auth_mode", cfg.AuthMode)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal("server exited", "err", err)
	}
}
