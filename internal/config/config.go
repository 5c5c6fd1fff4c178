package config

import (
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/kelseyhightower/envconfig"

	"github.com/MrJamesThe3rd/tankops/internal/journal"
)

const (
	JournalLocal  = "local"
	JournalRemote = "remote"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"tankops"`
		Port     int    `envconfig:"PORT" default:"8080"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"tankops"`
		Migrate  bool   `envconfig:"DB_MIGRATE" default:"false"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"60s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"*"`
	}

	Business struct {
		Timezone string `envconfig:"BUSINESS_TIMEZONE" default:"UTC"`
	}

	Approval struct {
		Timeout       time.Duration `envconfig:"APPROVAL_TIMEOUT" default:"15s"`
		MaxRetries    int           `envconfig:"APPROVAL_MAX_RETRIES" default:"2"`
		RetryInterval time.Duration `envconfig:"APPROVAL_RETRY_INTERVAL" default:"200ms"`
	}

	Journal struct {
		Mode  string        `envconfig:"JOURNAL_MODE" default:"local"`
		URL   string        `envconfig:"JOURNAL_URL"`
		Token string        `envconfig:"JOURNAL_TOKEN"`
		Wait  time.Duration `envconfig:"JOURNAL_TIMEOUT" default:"5s"`
	}

	Accounts struct {
		Inventory        string `envconfig:"ACCOUNT_INVENTORY" default:"1.1.4.01"`
		InTransit        string `envconfig:"ACCOUNT_IN_TRANSIT" default:"1.1.4.02"`
		ShrinkageLoss    string `envconfig:"ACCOUNT_SHRINKAGE_LOSS" default:"3.2.1.05"`
		TransitGain      string `envconfig:"ACCOUNT_TRANSIT_GAIN" default:"3.1.9.02"`
		DepositLiability string `envconfig:"ACCOUNT_DEPOSIT_LIABILITY" default:"2.1.8.01"`
	}

	Auth struct {
		JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// Location is the time zone business days are counted in.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Business.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading business timezone: %w", err)
	}

	return loc, nil
}

func (c *Config) JournalAccounts() journal.Accounts {
	return journal.Accounts{
		Inventory:        c.Accounts.Inventory,
		InTransit:        c.Accounts.InTransit,
		ShrinkageLoss:    c.Accounts.ShrinkageLoss,
		TransitGain:      c.Accounts.TransitGain,
		DepositLiability: c.Accounts.DepositLiability,
	}
}

// ApprovalBudget is the longest an approval can take: every attempt running
// to its timeout plus the largest backoff wait between attempts.
func (c *Config) ApprovalBudget() time.Duration {
	budget := time.Duration(c.Approval.MaxRetries+1) * c.Approval.Timeout

	interval := float64(c.Approval.RetryInterval)
	for range c.Approval.MaxRetries {
		wait := min(interval, float64(backoff.DefaultMaxInterval))
		budget += time.Duration(wait * (1 + backoff.DefaultRandomizationFactor))
		interval *= backoff.DefaultMultiplier
	}

	return budget
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	switch cfg.Journal.Mode {
	case JournalLocal:
	case JournalRemote:
		if cfg.Journal.URL == "" {
			return nil, fmt.Errorf("JOURNAL_URL is required when JOURNAL_MODE is %s", JournalRemote)
		}
	default:
		return nil, fmt.Errorf("unknown JOURNAL_MODE %q", cfg.Journal.Mode)
	}

	if cfg.Approval.MaxRetries < 0 {
		return nil, fmt.Errorf("APPROVAL_MAX_RETRIES must not be negative")
	}

	// A request cut off mid-retry reports a timeout for an approval that may
	// still commit.
	if budget := cfg.ApprovalBudget(); cfg.Server.Timeout <= budget {
		return nil, fmt.Errorf("SERVER_TIMEOUT %s must exceed the approval budget %s", cfg.Server.Timeout, budget)
	}

	return &cfg, nil
}
