// Package cli implements tankctl, the operator command line for stock
// queries, unload review and schema migrations.
package cli

import (
	"fmt"
	"slices"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/tankops/internal/config"
	"github.com/MrJamesThe3rd/tankops/internal/database"
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

// RootOptions holds the global flags.
type RootOptions struct {
	Format string // "json" | "text"
}

var ValidFormats = []string{"text", "json"}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tankctl",
		Short: "Tank stock and unload approval operations",
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewStockCommand(opts))
	cmd.AddCommand(NewRemainingCommand(opts))
	cmd.AddCommand(NewAllocationsCommand(opts))
	cmd.AddCommand(NewApproveCommand(opts))
	cmd.AddCommand(NewRejectCommand(opts))

	return cmd
}

// app is the service graph a command runs against.
type app struct {
	cfg *config.Config
	db  *sqlx.DB
	log *zap.Logger

	inventory   *inventory.Service
	ledger      *ledger.Service
	ledgerStore *ledgerStore.Store
	unloads     *unload.Service
}

func (a *app) Close() {
	a.db.Close()
	_ = a.log.Sync()
}

func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.App.LogLevel)
	if err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	var poster journal.Poster = journalStore.NewPoster()
	if cfg.Journal.Mode == config.JournalRemote {
		poster = remote.New(cfg.Journal.URL, cfg.Journal.Token, cfg.Journal.Wait)
	}

	a := &app{
		cfg:         cfg,
		db:          db,
		log:         log,
		inventory:   inventory.NewService(inventoryStore.New(db), loc),
		ledgerStore: ledgerStore.New(db),
	}

	a.ledger = ledger.NewService(a.ledgerStore)
	a.unloads = unload.NewService(unloadStore.New(db, poster), a.inventory, a.ledger, cfg.JournalAccounts(),
		unload.WithLogger(log.Named("unload")),
		unload.WithApprovalTimeout(cfg.Approval.Timeout),
		unload.WithRetry(cfg.Approval.MaxRetries, cfg.Approval.RetryInterval),
	)

	return a, nil
}
