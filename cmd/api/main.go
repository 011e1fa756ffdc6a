package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"

	_ "github.com/redmonkez12/friend-app/docs" // Swagger docs (generated)
	"github.com/redmonkez12/friend-app/internal/activity"
	"github.com/redmonkez12/friend-app/internal/auth"
	"github.com/redmonkez12/friend-app/internal/config"
	"github.com/redmonkez12/friend-app/internal/database"
	"github.com/redmonkez12/friend-app/internal/goal"
	httpServer "github.com/redmonkez12/friend-app/internal/http"
	"github.com/redmonkez12/friend-app/internal/logging"
	"github.com/redmonkez12/friend-app/internal/message"
	"github.com/redmonkez12/friend-app/internal/metrics"
	"github.com/redmonkez12/friend-app/internal/ratelimit"
	"github.com/redmonkez12/friend-app/internal/realtime"
	"github.com/redmonkez12/friend-app/internal/user"
)

// @title           Friend App API
// @version         1.0.0
// @description     Accounts, activity logs, goals and direct messages for the Friend App.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:3000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := logging.NewLogger(cfg.Server.IsDevelopment())
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
		"db_driver", cfg.Database.Driver,
		"token_strategy", cfg.Auth.TokenStrategy,
	)

	ctx := context.Background()

	// Initialize database connection
	db, err := initDB(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	// Initialize rate limiter (Redis when configured, in-process otherwise)
	var limiter ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		if cfg.Redis.Enabled() {
			redisClient, err := initRedis(ctx, cfg.Redis)
			if err != nil {
				return fmt.Errorf("failed to initialize Redis: %w", err)
			}
			defer redisClient.Close()
			limiter = ratelimit.NewRedisLimiter(redisClient, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
		} else {
			limiter = ratelimit.NewLocalLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
		}
	}

	tokenService, err := newTokenService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	var hasher auth.PasswordHasher = auth.NewArgon2Hasher()
	if cfg.Auth.PasswordHasher == config.HasherBcrypt {
		hasher = auth.NewBcryptHasher()
	}

	// Initialize repositories
	userRepo := user.NewRepository(db)
	activityRepo := activity.NewRepository(db)
	goalRepo := goal.NewRepository(db)
	messageRepo := message.NewRepository(db)

	// Initialize auth service
	authService := auth.NewService(userRepo, tokenService, hasher, logger, cfg.Auth.TokenTTL)

	hub := realtime.NewHub(logger, cfg.Server.TrustedOrigins)
	defer hub.Close()

	// Initialize router
	router := httpServer.NewRouter(httpServer.RouterDeps{
		Config:          cfg,
		Logger:          logger,
		DB:              db,
		AuthHandler:     auth.NewHandler(authService),
		AuthMiddleware:  auth.NewMiddleware(tokenService),
		ActivityHandler: activity.NewHandler(activityRepo),
		GoalHandler:     goal.NewHandler(goalRepo),
		MessageHandler:  message.NewHandler(messageRepo),
		RateLimiter:     limiter,
		Metrics:         metrics.New(),
		Hub:             hub,
	})

	// Initialize HTTP server
	server := httpServer.NewServer(cfg.Server, router, logger)
	server.OnShutdown(hub.Close)

	// Serve until SIGINT or SIGTERM, then shut down gracefully
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx)
}

// initDB opens the store and applies pending migrations when enabled
func initDB(ctx context.Context, cfg config.DatabaseConfig, logger *logging.Logger) (*bun.DB, error) {
	if cfg.UsesSQLiteFile() {
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := database.Open(ctx, cfg.Driver, cfg.ConnectionString())
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		m, err := database.NewMigrator(db.DB, cfg.Driver)
		if err != nil {
			db.Close()
			return nil, err
		}
		results, err := m.Up(ctx)
		if err != nil {
			db.Close()
			return nil, err
		}
		for _, r := range results {
			logger.Info("applied migration", "version", r.Source.Version, "duration_ms", r.Duration.Milliseconds())
		}
	}

	return db, nil
}

// initRedis initializes the Redis connection and returns a Redis client
func initRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Verify connection
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}

func newTokenService(cfg config.AuthConfig) (auth.TokenService, error) {
	if cfg.TokenStrategy == config.TokenStrategyPaseto {
		return auth.NewPasetoService(cfg.PasetoKey)
	}
	return auth.NewJWTService(cfg.JWTSecret)
}
