package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Storage configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"./newsdigest.db" description:"Path to the SQLite database file"`

	// Application configuration
	SourcesDir   string `long:"sources-dir" env:"SOURCES_DIR" default:"./sources" description:"Directory containing keyword source configuration files"`
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for the admin endpoints (optional)"`
	WorkerCount  int    `long:"worker-count" env:"WORKER_COUNT" default:"5" description:"Number of concurrent delivery workers per run"`
	ItemLimit    int    `long:"item-limit" env:"ITEM_LIMIT" default:"5" description:"Default maximum news items per keyword"`

	// Delivery configuration
	SMTPHost     string `long:"smtp-host" env:"SMTP_HOST" default:"smtp.gmail.com" description:"SMTP server host"`
	SMTPPort     int    `long:"smtp-port" env:"SMTP_PORT" default:"587" description:"SMTP submission port"`
	SMTPUsername string `long:"smtp-username" env:"SMTP_USERNAME" description:"SMTP username (required)" required:"true"`
	SMTPPassword string `long:"smtp-password" env:"SMTP_PASSWORD" description:"SMTP password (required)" required:"true"`
	SenderEmail  string `long:"sender-email" env:"SENDER_EMAIL" description:"Sender address for outgoing digests (defaults to SMTP username)"`
	SendAt       string `long:"send-at" env:"SEND_AT" default:"11:00" description:"Daily send time in HH:MM (local time)"`
	SendTimeout  int    `long:"send-timeout" env:"SEND_TIMEOUT" default:"30" description:"Per-recipient SMTP timeout in seconds"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"NewsDigest/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for the daily schedule (e.g., UTC, Asia/Seoul)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:       raw.DBPath,
		SourcesDir:   raw.SourcesDir,
		Port:         raw.Port,
		APIAccessKey: raw.APIAccessKey,
		WorkerCount:  raw.WorkerCount,
		ItemLimit:    raw.ItemLimit,
		SMTPHost:     raw.SMTPHost,
		SMTPPort:     raw.SMTPPort,
		SMTPUsername: raw.SMTPUsername,
		SMTPPassword: raw.SMTPPassword,
		SenderEmail:  cmp.Or(raw.SenderEmail, raw.SMTPUsername),
		SendAt:       raw.SendAt,
		SendTimeout:  raw.SendTimeout,
		UserAgent:    raw.UserAgent,
		Timezone:     raw.Timezone,
		Debug:        raw.Debug,
		Version:      GetVersion(),
	}

	if _, err := time.Parse("15:04", cfg.SendAt); err != nil {
		return nil, fmt.Errorf("invalid send time %q, expected HH:MM: %w", cfg.SendAt, err)
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
