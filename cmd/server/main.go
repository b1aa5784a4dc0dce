package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/scrimsync/teamsync/internal/config"
	"github.com/scrimsync/teamsync/pkg/auth"
	"github.com/scrimsync/teamsync/pkg/clients/discordclient"
	"github.com/scrimsync/teamsync/pkg/core/services"
	"github.com/scrimsync/teamsync/pkg/handlers"
	"github.com/scrimsync/teamsync/pkg/postgres"
	"github.com/scrimsync/teamsync/pkg/utils/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is for local development; production sets real env vars
	_ = godotenv.Load()

	logger, err := logging.InitLogger("server")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Connecting to database")
	database, err := postgres.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.RunMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("Database ready")

	verifier, err := auth.NewVerifier(cfg.JWTSecret)
	if err != nil {
		return fmt.Errorf("failed to create token verifier: %w", err)
	}

	h := &handlers.Handler{
		DB:       database,
		Cfg:      cfg,
		Logger:   logger,
		Verifier: verifier,
	}

	// In-process reminder sweep alongside the API
	go runSweep(ctx, database, cfg, logger)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.Use(h.Authenticate())
	{
		api.POST("/votes/toggle", h.ToggleVote)
		api.POST("/events/:id/rsvp", h.ToggleRSVP)
		api.GET("/availability", h.GetAvailability)
		api.GET("/events/:id/availability", h.GetEventAvailability)
		api.GET("/roster", h.GetRoster)
		api.PUT("/profile", h.SaveProfile)
		api.GET("/notifications", h.GetNotifications)
		api.POST("/notifications/read", h.MarkNotificationsRead)
	}

	admin := router.Group("/admin")
	admin.Use(h.Authenticate(), h.RequireAdmin())
	{
		admin.POST("/events", h.CreateEvent)
		admin.PATCH("/events/:id/status", h.SetEventStatus)
		admin.DELETE("/events/past", h.DeletePastEvents)
		admin.POST("/events/:id/remind", h.PostEventReminder)
		admin.POST("/events/:id/roster-ready", h.PostRosterReady)
		admin.POST("/summary/daily", h.PostDailySummary)
		admin.PUT("/overrides/:eventID/:userID", h.PutOverride)
		admin.DELETE("/overrides/:eventID/:userID", h.DeleteOverride)
		admin.DELETE("/votes", h.ClearWeekVotes)
		admin.POST("/claims", h.GrantAdmin)
		admin.PUT("/webhook", h.SetWebhook)
		admin.POST("/webhook/test", h.TestWebhook)
		admin.PATCH("/profiles/:userID/roster", h.SetRoster)
		admin.DELETE("/profiles/:userID", h.DeleteProfile)
	}

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		logger.Info("Shutting down server")
		server.Shutdown(context.Background())
	}()

	logger.Info("Server listening", zap.String("addr", cfg.ListenAddr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// runSweep runs the reminder sweep loop, resolving the webhook URL fresh on
// each tick so admin updates take effect without a restart
func runSweep(ctx context.Context, database *postgres.DB, cfg *config.Config, logger *zap.Logger) {
	notifier := &sweepNotifier{database: database, cfg: cfg}
	services.RunSweepLoop(ctx, database, notifier, cfg, logger)
}

// sweepNotifier defers webhook client construction to post time so the
// persisted URL is always current
type sweepNotifier struct {
	database *postgres.DB
	cfg      *config.Config
}

func (n *sweepNotifier) Post(ctx context.Context, message discordclient.Message) error {
	url, err := services.ResolveWebhookURL(ctx, n.database, n.cfg.WebhookURL)
	if err != nil {
		return err
	}
	client, err := discordclient.NewClient(url)
	if err != nil {
		return err
	}
	return client.Post(ctx, message)
}
