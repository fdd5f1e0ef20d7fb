package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Frostlock/Warrens-II/internal/agent"
	"github.com/Frostlock/Warrens-II/internal/engine"
	"github.com/Frostlock/Warrens-II/internal/server"
	"github.com/Frostlock/Warrens-II/internal/telemetry"
	"github.com/Frostlock/Warrens-II/internal/version"
	"github.com/Frostlock/Warrens-II/pkg/logger"
	"github.com/joho/godotenv"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var seed int64
	var mode string
	// Читаем флаг -seed. По умолчанию 0 (значит взять из окружения или сгенерировать).
	flag.Int64Var(&seed, "seed", 0, "Initial world seed (0 for env/random)")
	flag.StringVar(&mode, "mode", "", "Simulation mode: turn or realtime (default from env)")
	flag.Parse()

	// .env не обязателен: переменные могут быть заданы напрямую
	if err := godotenv.Load(); err != nil {
		logger.Log.WithError(err).Debug(".env file not loaded")
	}

	cfg, err := engine.LoadConfig()
	if err != nil {
		logger.Log.WithError(err).Fatal("Invalid configuration")
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if mode != "" {
		cfg.Mode = mode
	}
	if err := cfg.Validate(); err != nil {
		logger.Log.WithError(err).Fatal("Invalid configuration")
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat)

	logger.Log.Info("Starting Warrens...")
	logger.Log.Info(version.String())
	logger.Log.Infof("Using Master Seed: %d", cfg.Seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Телеметрия (без неё игра тоже работает)
	if cfg.Telemetry {
		shutdown, err := telemetry.Setup(ctx, version.String())
		if err != nil {
			logger.Log.WithError(err).Warn("Telemetry setup failed, running without traces")
		} else {
			defer func() {
				sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(sctx); err != nil {
					logger.Log.WithError(err).Warn("Error shutting down telemetry")
				}
			}()
		}
	}

	// 3. Инициализация ядра с конфигом
	gameService, err := engine.NewService(ctx, cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to build world")
	}

	if cfg.Mode == engine.ModeTurn && cfg.Autopilot {
		bot := agent.NewBot("autopilot", gameService, gameService.Hub, cfg.Seed, cfg.AutopilotDelay)
		go bot.Run(ctx)
	}

	// 4. Запуск сервера
	srv := server.New(gameService, cfg.Port)
	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.WithError(err).Error("Server error")
			stop()
		}
	}()

	if err := gameService.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Log.WithError(err).Error("Game loop failed")
	}

	// Graceful Shutdown
	logger.Log.Info("Shutting down...")
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Log.WithError(err).Warn("Server shutdown failed")
	}
	logger.Log.Info("Done.")
}
