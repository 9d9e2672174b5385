package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gonogoapp/gonogo/internal/config"
	"github.com/gonogoapp/gonogo/internal/db"
	"github.com/gonogoapp/gonogo/internal/repository"
	"github.com/gonogoapp/gonogo/internal/service"
	"github.com/gonogoapp/gonogo/internal/storage"
	"github.com/gonogoapp/gonogo/internal/store"
)

type App struct {
	Cfg              *config.Config
	DB               *sqlx.DB
	AuthService      *service.AuthService
	GoalService      *service.GoalService
	MilestoneService *service.MilestoneService
	BackupService    *service.BackupService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Durable store + repositories
	kv := store.NewKV(database)
	userRepository := repository.NewUserRepository(database)
	goalRepository := repository.NewGoalRepository(kv)

	// Optional backup archive (nil when no bucket is configured)
	archive, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	authService := service.NewAuthService(
		userRepository,
		goalRepository,
		cfg.JWTSecret,
		cfg.JWTExpiry,
		cfg.IsProduction(),
	)
	goalService := service.NewGoalService(goalRepository)
	milestoneService := service.NewMilestoneService(goalRepository)
	backupService := service.NewBackupService(userRepository, goalRepository, archive)

	return &App{
		Cfg:              cfg,
		DB:               database,
		AuthService:      authService,
		GoalService:      goalService,
		MilestoneService: milestoneService,
		BackupService:    backupService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
