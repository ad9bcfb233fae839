package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finance-assistant/config"
	"finance-assistant/internal/analytics"
	chatDelivery "finance-assistant/internal/assistant/delivery/http"
	"finance-assistant/internal/assistant/usecase"
	"finance-assistant/internal/fastlane"
	"finance-assistant/internal/guard"
	"finance-assistant/internal/httpserver"
	"finance-assistant/internal/intent"
	"finance-assistant/internal/knowledge"
	"finance-assistant/internal/middleware"
	"finance-assistant/internal/narration"
	"finance-assistant/internal/session"
	"finance-assistant/internal/test"
	"finance-assistant/pkg/llmprovider"
	"finance-assistant/pkg/log"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting finance assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. LLM provider tiers
	tiers, err := llmprovider.InitializeTiers(&cfg.LLM)
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize LLM providers: %v", err)
		return
	}
	manager := llmprovider.NewManager(tiers, llmprovider.ManagerConfigFromLLM(&cfg.LLM), logger)

	// 4. Engine components
	calibrator := intent.NewCalibrator(cfg.Router)
	router := intent.New(intent.DefaultRules(), calibrator, cfg.Router, logger)
	sessions := session.NewStore(cfg.Cache.SessionSize, cfg.Cache.SessionTTL, cfg.Router.HistorySize)
	kb := knowledge.NewStore(knowledge.DefaultEntries())
	scorer := guard.NewScorer(cfg.Usefulness)

	narrator := narration.NewNarrator(manager, logger)
	critic := narration.NewCritic()

	miniStrategy := fastlane.NewMiniModelStrategy(manager, critic, kb, cfg.Knowledge, cfg.Cache)
	lane := fastlane.NewLane(scorer, logger,
		fastlane.NewSolverStrategy(),
		fastlane.NewKBStrategy(kb, cfg.Knowledge),
		miniStrategy,
	)
	emitter := analytics.NewLogEmitter(logger)

	// 5. Assistant domain
	assistantUC := usecase.New(logger, router, calibrator, sessions, lane, miniStrategy,
		narrator, critic, scorer, emitter, cfg.Chat)
	chatHandler := chatDelivery.New(logger, assistantUC)
	testHandler := test.New(logger, router, calibrator)

	// 6. HTTP server
	mw := middleware.New(logger, cfg.Chat)
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		ChatHandler: chatHandler,
		TestHandler: testHandler,
		Middleware:  mw,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize HTTP server: %v", err)
		return
	}

	go func() {
		<-ctx.Done()
		logger.Info(ctx, "Shutdown signal received")
		// gin.Run blocks until the process exits; give in-flight requests a
		// moment before the process is torn down.
		time.Sleep(200 * time.Millisecond)
		os.Exit(0)
	}()

	// 7. Run
	if err := httpServer.Run(); err != nil {
		logger.Errorf(ctx, "Failed to run server: %v", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
