package cmd

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"sage/config"
	"sage/database"
	"sage/events"
	"sage/repository"
	"sage/service"
)

// App bundles the wired persistence services for a front-end to consume.
type App struct {
	DB               *database.DB
	EventBus         *events.Bus
	UserService      service.UserService
	GuildService     service.GuildService
	FavouriteService service.FavouriteService
	OwnerService     service.OwnerService
}

// NewApp connects to the database, verifies the schema and wires the
// service layer.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established successfully")

	// Fail fast if the migrations have not been applied
	if err := db.VerifySchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("schema verification failed: %w", err)
	}
	log.Info("Schema verified successfully")

	eventBus := events.NewBus()
	eventBus.Subscribe(events.EventTypeUserReclaimed, func(ctx context.Context, event events.Event) {
		e := event.(events.UserReclaimedEvent)
		log.WithFields(log.Fields{
			"userID":      e.UserID,
			"displayName": e.DisplayName,
		}).Debug("User reclamation event dispatched")
	})

	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	return &App{
		DB:               db,
		EventBus:         eventBus,
		UserService:      service.NewUserService(uowFactory),
		GuildService:     service.NewGuildService(uowFactory),
		FavouriteService: service.NewFavouriteService(uowFactory),
		OwnerService:     service.NewOwnerService(uowFactory),
	}, nil
}

// Close releases the app's database resources
func (a *App) Close() {
	a.DB.Close()
}

// Run initializes the application and blocks until the context is
// cancelled.
func Run(ctx context.Context) error {
	cfg := config.Get()

	configureLogging(cfg)
	log.Info("Starting sage persistence service...")

	app, err := NewApp(ctx, cfg)
	if err != nil {
		return err
	}
	log.Info("Services initialized successfully")

	// Wait for context cancellation
	log.Infof("Service is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Info("Shutting down...")

	// Give cleanup operations time to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("Closing database connection...")
	app.Close()

	select {
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Info("Shutdown completed")
	}

	return nil
}

func configureLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
