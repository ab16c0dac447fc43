package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"os/user"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/aashig53/InsiderThreatDetector/internal/agent"
	"github.com/aashig53/InsiderThreatDetector/internal/classify"
	"github.com/aashig53/InsiderThreatDetector/internal/config"
	"github.com/aashig53/InsiderThreatDetector/internal/logging"
)

func main() {
	// A missing .env file is fine, the environment still applies.
	_ = godotenv.Load()

	var watchPath string
	flag.StringVar(&watchPath, "path", "", "Directory tree to monitor")
	flag.Parse()
	if watchPath == "" && flag.NArg() > 0 {
		watchPath = flag.Arg(0)
	}

	logger := logging.New()
	defer logger.Sync()

	cfg, err := config.LoadAgent(watchPath)
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	currentUser, err := user.Current()
	if err != nil {
		logger.Fatal("could not resolve current user", zap.Error(err))
	}

	watcher, err := agent.NewWatcher(cfg.WatchPath, logger)
	if err != nil {
		logger.Fatal("unusable watch root", zap.String("path", cfg.WatchPath), zap.Error(err))
	}

	classifier := classify.New(cfg.Zone())
	decoy := agent.NewDecoyController(currentUser.Username, logger)
	forwarder := agent.NewHTTPForwarder(cfg.ServerURL, cfg.ForwardTimeout)

	pipeline, err := agent.NewPipeline(classifier, decoy, forwarder, currentUser.Username, logger)
	if err != nil {
		logger.Fatal("failed to build pipeline", zap.Error(err))
	}

	if err := watcher.Start(); err != nil {
		logger.Fatal("failed to start watcher", zap.Error(err))
	}

	logger.Info("monitoring started",
		zap.String("path", cfg.WatchPath),
		zap.String("server", cfg.ServerURL),
		zap.String("user", currentUser.Username),
	)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		cancel()
	}()

	pipeline.Run(ctx, watcher.Events())

	if err := watcher.Stop(); err != nil {
		logger.Warn("watcher shutdown", zap.Error(err))
	}
	logger.Info("monitoring stopped")
}
