// Package config loads the pipeline configuration from a TOML file with
// environment variable overrides for credentials and deployment knobs.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Defaults mirroring a conservative cold-outreach posture.
const (
	DefaultDailyLimit       = 50
	DefaultMaxPerCompany    = 2
	DefaultSendDelaySeconds = 180
	DefaultMaxPages         = 50
	DefaultPageDelayMillis  = 400
	DefaultOutputPath       = "leads.csv"
	DefaultTokenCacheFile   = "graph_token.json"

	defaultConfigDirName  = ".prospect"
	defaultConfigFileName = "config.toml"
)

// Config holds all settings for the collection and dispatch loops.
type Config struct {
	Apollo   ApolloConfig   `toml:"apollo"`
	Graph    GraphConfig    `toml:"graph"`
	Collect  CollectConfig  `toml:"collect"`
	Dispatch DispatchConfig `toml:"dispatch"`
	Telegram TelegramConfig `toml:"telegram"`
	Ledger   LedgerConfig   `toml:"ledger"`
}

// ApolloConfig configures the people directory client.
type ApolloConfig struct {
	APIKey string `toml:"api_key"`
}

// GraphConfig configures the Microsoft Graph mailer and its app registration.
type GraphConfig struct {
	TenantID       string `toml:"tenant_id"`
	ClientID       string `toml:"client_id"`
	ClientSecret   string `toml:"client_secret"`
	SenderUPN      string `toml:"sender_upn"`
	TokenCachePath string `toml:"token_cache_path"`
}

// CollectConfig configures the collection loop.
type CollectConfig struct {
	OutputPath      string `toml:"output_path"`
	MaxPages        int    `toml:"max_pages"`
	PageDelayMillis int    `toml:"page_delay_ms"`
}

// DispatchConfig configures the dispatch loop.
type DispatchConfig struct {
	DailyLimit          int    `toml:"daily_limit"`
	MaxPerCompanyPerDay int    `toml:"max_per_company_per_day"`
	SendDelaySeconds    int    `toml:"send_delay_seconds"`
	DoNotContactPath    string `toml:"do_not_contact_path"`
	LogoPath            string `toml:"logo_path"`
	SenderName          string `toml:"sender_name"`
	SenderTitle         string `toml:"sender_title"`
	BrandName           string `toml:"brand_name"`
}

// TelegramConfig configures run summary notifications.
type TelegramConfig struct {
	Token  string `toml:"token"`
	ChatID string `toml:"chat_id"`
}

// LedgerConfig configures the SQLite ledger location.
type LedgerConfig struct {
	DataDir string `toml:"data_dir"`
}

// DefaultPath returns the default config file location,
// ~/.prospect/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, defaultConfigDirName, defaultConfigFileName), nil
}

// Load reads the config file at path, fills defaults, and applies environment
// overrides. A missing file is fine; env vars alone can configure a run. An
// empty path uses DefaultPath.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Collect: CollectConfig{
			OutputPath:      DefaultOutputPath,
			MaxPages:        DefaultMaxPages,
			PageDelayMillis: DefaultPageDelayMillis,
		},
		Dispatch: DispatchConfig{
			DailyLimit:          DefaultDailyLimit,
			MaxPerCompanyPerDay: DefaultMaxPerCompany,
			SendDelaySeconds:    DefaultSendDelaySeconds,
		},
	}

	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Config file is optional.
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := toml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnv()

	if cfg.Graph.TokenCachePath == "" {
		cfg.Graph.TokenCachePath = filepath.Join(filepath.Dir(path), DefaultTokenCacheFile)
	}

	return cfg, nil
}

// applyEnv lets deployment environments inject credentials without a config
// file on disk.
func (c *Config) applyEnv() {
	setString(&c.Apollo.APIKey, "APOLLO_API_KEY")
	setString(&c.Graph.TenantID, "TENANT_ID")
	setString(&c.Graph.ClientID, "CLIENT_ID")
	setString(&c.Graph.ClientSecret, "CLIENT_SECRET")
	setString(&c.Graph.SenderUPN, "SENDER_UPN")
	setString(&c.Collect.OutputPath, "CSV_PATH")
	setString(&c.Telegram.Token, "TELEGRAM_BOT_TOKEN")
	setString(&c.Telegram.ChatID, "TELEGRAM_CHAT_ID")
	setInt(&c.Dispatch.DailyLimit, "DAILY_LIMIT")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*dst = n
}
