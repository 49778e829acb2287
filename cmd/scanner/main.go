package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ScannerLedger/internal/archive"
	"ScannerLedger/internal/config"
	"ScannerLedger/internal/ledger"
	"ScannerLedger/internal/scheduler"
	"ScannerLedger/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] ScannerLedger starting...")

	// Load .env if present (API keys and overrides for local runs)
	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env file")
	}

	// Load config
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

	// Init durable store
	var st store.Store
	if cfg.Database.SQLitePath != "" {
		ss, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite store failed, using noop: %v", err)
			st = store.NewNoopStore()
		} else {
			st = ss
			defer ss.Close()
		}
	} else {
		st = store.NewNoopStore()
	}

	// Init daily ledger
	loc, err := cfg.SessionLocation()
	if err != nil {
		log.Fatalf("[FATAL] session timezone: %v", err)
	}
	// Bootstrap the ledger so the logs directory exists before the first
	// append from the upstream scanner.
	if _, err := ledger.New(cfg.Ledger.LogsDir, loc, st); err != nil {
		log.Fatalf("[FATAL] init ledger: %v", err)
	}

	// Init archive manager
	am, err := archive.NewManager(cfg.Ledger.LogsDir, cfg.Archive.BackupDir,
		cfg.Archive.RetentionDays, cfg.Archive.CloudBackupURL, st)
	if err != nil {
		log.Fatalf("[FATAL] init archive manager: %v", err)
	}

	if stats, err := st.Stats(); err == nil {
		log.Printf("[INFO] store: %d hits, %d tickers, %s, %d backup files",
			stats.TotalHits, stats.UniqueTickers, stats.DatabaseSize, am.BackupCount())
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, am)
	if err := sched.RegisterAll(cfg.Archive.RolloverCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run rollover immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing rollover now")
		go sched.RunRolloverNow()
	}

	log.Println("[INFO] ScannerLedger is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] ScannerLedger stopped")
}
