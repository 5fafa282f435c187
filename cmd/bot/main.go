package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Suraj89011/discord-bot-template/internal/apiclient"
	"github.com/Suraj89011/discord-bot-template/internal/bot"
	"github.com/Suraj89011/discord-bot-template/internal/commands"
	"github.com/Suraj89011/discord-bot-template/internal/config"
	"github.com/Suraj89011/discord-bot-template/internal/database"
	"github.com/Suraj89011/discord-bot-template/internal/logging"
	"github.com/Suraj89011/discord-bot-template/internal/redis"
	"github.com/Suraj89011/discord-bot-template/internal/version"
)

func setupConfig() *config.Config {
	// Missing .env is fine; real deployments configure the environment
	// directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	return pool
}

func setupRedis(cfg *config.Config) *goredis.Client {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

// onReady publishes the slash command catalog and sets the presence.
// It runs once per process, even across gateway reconnects.
func onReady(cfg *config.Config, registry *bot.Registry) func(s *discordgo.Session, r *discordgo.Ready) {
	return func(s *discordgo.Session, r *discordgo.Ready) {
		slog.Info("Gateway ready",
			"username", r.User.Username,
			"guilds", len(r.Guilds),
			"session_id", r.SessionID,
		)

		// Guild-scoped registration propagates instantly, so development
		// setups pin commands to one guild. Global registration can take
		// up to an hour.
		guildID := ""
		if cfg.IsDevelopment() && cfg.DiscordGuildID != "" {
			guildID = cfg.DiscordGuildID
		}
		if err := bot.PublishCatalog(s, registry, cfg.DiscordClientID, guildID); err != nil {
			// Stale catalog is degraded but workable; existing commands
			// keep dispatching.
			slog.Error("Failed to publish command catalog", "error", err)
		}

		if err := s.UpdateGameStatus(0, "/help"); err != nil {
			slog.Warn("Failed to set presence", "error", err)
		}
	}
}

func runGracefulShutdown(session *discordgo.Session, health *bot.HealthServer) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := health.Shutdown(shutdownCtx); err != nil {
			slog.Error("Health server shutdown error", "error", err)
		}

		if err := session.Close(); err != nil {
			slog.Error("Gateway close error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()
	logging.Init(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Bot starting", "env", cfg.AppEnv, "version", version.Get().Version)

	pool := setupDB(cfg)
	defer pool.Close()

	redisClient := setupRedis(cfg)
	defer func() { _ = redisClient.Close() }()

	userRepo := database.NewUserRepo(pool)
	serverRepo := database.NewServerRepo(pool)
	usageRepo := database.NewUsageRepo(pool)

	// The API client is optional; without it /status falls back to
	// direct repository counts.
	var stats commands.StatsSource
	if cfg.APIBaseURL != "" {
		stats = apiclient.New(cfg.APIBaseURL, cfg.APIKey)
	}

	registry := bot.NewRegistry()
	deps := commands.Deps{
		Servers: serverRepo,
		Users:   userRepo,
		DB:      pool,
		Redis:   redis.Pinger{Client: redisClient},
		Stats:   stats,
		Clock:   clock,
	}
	if err := commands.RegisterAll(registry, deps); err != nil {
		slog.Error("Failed to register commands", "error", err)
		os.Exit(1)
	}

	ledger := bot.NewCooldownLedger(clock)
	dispatcher := bot.NewDispatcher(registry, ledger, usageRepo, clock)
	router := bot.NewRouter(dispatcher, serverRepo, onReady(cfg, registry))

	session, err := bot.NewSession(cfg.DiscordToken)
	if err != nil {
		slog.Error("Failed to create Discord session", "error", err)
		os.Exit(1)
	}
	router.Bind(session)

	if err := session.Open(); err != nil {
		slog.Error("Failed to open gateway connection", "error", err)
		os.Exit(1)
	}

	health := bot.NewHealthServer(cfg.BotPort, pool, redis.Pinger{Client: redisClient}, session, clock)
	done := runGracefulShutdown(session, health)

	slog.Info("Health server starting", "port", cfg.BotPort)
	if err := health.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Health server error", "error", err)
		os.Exit(1)
	}

	<-done
	slog.Info("Shutdown complete")
}
