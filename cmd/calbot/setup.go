package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/calbot/internal/config"
	"github.com/sandevgo/calbot/internal/core"
	"github.com/sandevgo/calbot/internal/providers/calendar"
	"github.com/sandevgo/calbot/internal/providers/llm"
	"github.com/sandevgo/calbot/internal/service/assistant"
	"github.com/sandevgo/calbot/internal/service/command"
	"github.com/sandevgo/calbot/internal/service/dispatch"
	"github.com/sandevgo/calbot/internal/service/prompt"
	"github.com/sandevgo/calbot/internal/service/state"
	"github.com/sandevgo/calbot/internal/storage/memory"
	"github.com/sandevgo/calbot/internal/storage/sqlite"
	"github.com/sandevgo/calbot/internal/transport/cli"
	"github.com/sandevgo/calbot/internal/transport/telegram"
	"github.com/sandevgo/calbot/pkg/log"
	"github.com/sandevgo/calbot/pkg/srv"
)

// NewServices wires the application. stop is handed to transports that can
// end the process on their own.
func NewServices(ctx context.Context, stop func()) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	err := initEnv(ctx, config.GetRuntimePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)

	// 2. Calendar backend
	db, err := initStorage(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	if db != nil {
		services = append(services, srv.NewCleanup(db.Close))
	}

	var googleCfg calendar.GoogleConfig
	if appCfg.IsGoogleBackend() {
		googleCfg = config.NewGoogleConfig(ctx)
	}
	scheduler, err := calendar.NewScheduler(ctx, appCfg, db, googleCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize calendar backend")
	}

	// 3. AI Provider
	ai, err := llm.NewDynamicProvider(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}

	// 4. Conversation and resolution
	store := memory.NewConversationStore(appCfg.GetHistoryLimit())
	engine := assistant.NewEngine(
		store,
		ai,
		prompt.NewBuilder(appCfg),
		dispatch.New(scheduler, appCfg.GetLocation(), appCfg.ProviderTimeout),
		assistant.Options{
			ContextWindow:     appCfg.GetContextWindowSize(),
			CompletionTimeout: appCfg.CompletionTimeout,
			Chat: core.ChatOptions{
				MaxTokens:   appCfg.MaxTokens,
				Temperature: appCfg.Temperature,
			},
		},
	)

	// 5. Commands
	router := command.New(command.NewCommands(appCfg, state.NewGlobalState(ai), ai, store))

	// 6. Transports
	transports, err := initTransports(ctx, appCfg, engine, router, stop)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	services = append(services, transports...)

	return services
}

// initStorage opens the local database. The Google backend keeps no local
// state, so it gets a nil handle.
func initStorage(ctx context.Context, cfg *config.AppConfig) (*sql.DB, error) {
	if cfg.IsGoogleBackend() {
		return nil, nil
	}
	return sqlite.NewDB(ctx, cfg.GetDatabasePath())
}

func initTransports(
	ctx context.Context,
	cfg *config.AppConfig,
	engine *assistant.Engine,
	router core.CmdRouter,
	stop func(),
) ([]srv.Service, error) {
	var services []srv.Service

	if cfg.IsTelegramSelected() {
		bot, err := telegram.NewBot(ctx, config.NewTelegramConfig(ctx), engine, router)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	if cfg.IsCLISelected() {
		rl, err := cli.NewReadLine(engine, router, cfg.GetRuntimePath(), stop)
		if err != nil {
			return nil, err
		}
		services = append(services, rl)
	}

	if len(services) == 0 {
		log.FromCtx(ctx).Warn().Msg("no transport enabled, waiting for shutdown signal")
	}
	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
