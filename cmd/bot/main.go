package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"CryptoSentinel/internal/collector"
	"CryptoSentinel/internal/config"
	"CryptoSentinel/internal/metrics"
	"CryptoSentinel/internal/model"
	"CryptoSentinel/internal/notifier"
	"CryptoSentinel/internal/recorder"
	"CryptoSentinel/internal/risk"
	"CryptoSentinel/internal/scheduler"
	"CryptoSentinel/internal/scorer"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] CryptoSentinel starting...")

	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init news sources
	var sources []collector.Source
	for _, meta := range cfg.Sources {
		switch meta.Type {
		case model.SourceRSS:
			sources = append(sources, collector.NewRSSSource(meta))
		case model.SourceAPI:
			sources = append(sources, collector.NewAPISource(meta, cfg.NewsAPIKey, cfg.Proxy))
		case model.SourceWebSocket:
			ws := collector.NewWSSource(meta)
			go ws.Start(ctx)
			sources = append(sources, ws)
		}
		log.Printf("[INFO] source registered: %s (%s)", meta.Name, meta.Type)
	}

	// Init collector
	col := collector.NewCollector(scorer.New(scorer.DefaultLexicon()), sources)

	// Init risk gate
	gate, err := risk.NewGate(cfg.Risk.PortfolioValue, cfg.Risk.EmergencyStopLossPct, risk.SystemClock())
	if err != nil {
		log.Fatalf("[FATAL] init risk gate: %v", err)
	}

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Metrics endpoint
	m := metrics.New()
	go func() {
		if err := metrics.Serve(cfg.Metrics.ListenAddr); err != nil && err != http.ErrServerClosed {
			log.Printf("[ERROR] metrics server: %v", err)
		}
	}()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, gate, tn, rec, m, cfg.Risk.Limits, cfg.Risk.PortfolioValue)
	if err := sched.RegisterAll(cfg.Schedule.NewsCheckCron, cfg.Schedule.DailyReportCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing news check now")
		go sched.RunCheckNow()
	}

	log.Println("[INFO] CryptoSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] CryptoSentinel stopped")
}
