package di

import (
	"github.com/sunriselabs/sunrise/internal/app"
	"github.com/sunriselabs/sunrise/internal/auth"
	"github.com/sunriselabs/sunrise/internal/config"
	"github.com/sunriselabs/sunrise/internal/database/client"
	"github.com/sunriselabs/sunrise/internal/database/storage"
	"github.com/sunriselabs/sunrise/internal/handler"
	"github.com/sunriselabs/sunrise/internal/logger"
	"github.com/sunriselabs/sunrise/internal/usecase"
)

// BuildApp initializes every dependency and returns the assembled App.
func BuildApp() (*app.App, error) {
	// 1. Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogCfg := logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	}
	slogger := logger.NewSlog(slogCfg)

	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. PostgreSQL client (pool, migrations, ORM session)
	dbClient, err := client.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// 3. Repositories
	userStorage := storage.NewUserStorage(dbClient.Gorm, slogger)
	moodStorage := storage.NewMoodStorage(dbClient.Gorm, slogger)

	// 4. Token service
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpires())

	// 5. Use cases
	userUseCase := usecase.NewUserUseCase(userStorage, tokens, slogger)
	moodUseCase := usecase.NewMoodUseCase(moodStorage, slogger)

	// 6. HTTP handlers
	h := handler.NewHandler(userUseCase, moodUseCase, slogger)

	// 7. Final application assembly
	application := app.NewApp(cfg, slogger, dbClient, h)

	slogger.Info("all dependencies initialized")
	return application, nil
}
