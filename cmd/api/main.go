package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/tankops/internal/config"
	"github.com/MrJamesThe3rd/tankops/internal/database"
	tankopsHttp "github.com/MrJamesThe3rd/tankops/internal/http"
	ledgerHandler "github.com/MrJamesThe3rd/tankops/internal/http/ledger"
	tankHandler "github.com/MrJamesThe3rd/tankops/internal/http/tank"
	unloadHandler "github.com/MrJamesThe3rd/tankops/internal/http/unload"
	"github.com/MrJamesThe3rd/tankops/internal/importer"
	"github.com/MrJamesThe3rd/tankops/internal/inventory"
	inventoryStore "github.com/MrJamesThe3rd/tankops/internal/inventory/store"
	"github.com/MrJamesThe3rd/tankops/internal/journal"
	"github.com/MrJamesThe3rd/tankops/internal/journal/remote"
	journalStore "github.com/MrJamesThe3rd/tankops/internal/journal/store"
	"github.com/MrJamesThe3rd/tankops/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/tankops/internal/ledger/store"
	"github.com/MrJamesThe3rd/tankops/internal/logger"
	"github.com/MrJamesThe3rd/tankops/internal/unload"
	unloadStore "github.com/MrJamesThe3rd/tankops/internal/unload/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.App.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error("server failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	if cfg.Auth.JWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET is required")
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if cfg.DB.Migrate {
		if err := database.Migrate(db, cfg.DB.Name, log); err != nil {
			return err
		}
	}

	var poster journal.Poster = journalStore.NewPoster()
	if cfg.Journal.Mode == config.JournalRemote {
		poster = remote.New(cfg.Journal.URL, cfg.Journal.Token, cfg.Journal.Wait)
	}

	var (
		inventoryService = inventory.NewService(inventoryStore.New(db), loc)
		ledgerService    = ledger.NewService(ledgerStore.New(db))
		unloadService    = unload.NewService(
			unloadStore.New(db, poster),
			inventoryService,
			ledgerService,
			cfg.JournalAccounts(),
			unload.WithLogger(log.Named("unload")),
			unload.WithApprovalTimeout(cfg.Approval.Timeout),
			unload.WithRetry(cfg.Approval.MaxRetries, cfg.Approval.RetryInterval),
		)
	)

	var (
		unloadH = unloadHandler.NewHandler(unloadService, log)
		tankH   = tankHandler.NewHandler(inventoryService, importer.NewParser(loc), log)
		ledgerH = ledgerHandler.NewHandler(ledgerService, log)
	)

	router := tankopsHttp.New(tankopsHttp.Options{
		JWTSecret:   []byte(cfg.Auth.JWTSecret),
		CORSOrigins: cfg.Server.CORSOrigins,
		Log:         log,
	}, unloadH, tankH, ledgerH)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           http.TimeoutHandler(router, cfg.Server.Timeout, "request timed out"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		log.Info("starting server", zap.String("addr", srv.Addr), zap.String("journal", cfg.Journal.Mode))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
