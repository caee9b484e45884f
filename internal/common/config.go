package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Environment string        `toml:"environment"` // "development" or "production"
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Archive     ArchiveConfig `toml:"archive"`
	IMAP        IMAPConfig    `toml:"imap"`
	Digest      DigestConfig  `toml:"digest"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig controls the HTTP server that renders archived threads.
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// StorageConfig groups the cache backend configuration.
type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig configures the Badger-backed normalized-body/digest cache.
type BadgerConfig struct {
	Path           string        `toml:"path"`             // database directory path
	TTL            time.Duration `toml:"ttl"`               // cache entry lifetime, 0 disables expiry
	ResetOnStartup bool          `toml:"reset_on_startup"` // delete database on startup for clean test runs
}

// ArchiveConfig names the mailing-list archive this instance renders, and
// the link-rewriting behavior stage A (the link extractor) applies.
type ArchiveConfig struct {
	Host           string `toml:"host"`            // archive host, e.g. "lists.example.org"
	ArchivePrefix  string `toml:"archive_prefix"`   // path prefix identifying an archive-internal link
	RenderedPrefix string `toml:"rendered_prefix"`  // path prefix to rewrite archive-internal links to
	RewriteLinks   bool   `toml:"rewrite_links"`    // whether stage A rewrites archive-internal links at all
	List           string `toml:"list"`             // mailing list name this instance archives
}

// IMAPConfig configures the ingestion connector that feeds raw message
// bodies into the normalization pipeline.
type IMAPConfig struct {
	Host       string `toml:"host"`
	Port       int    `toml:"port"`
	Username   string `toml:"username"`
	Password   string `toml:"password"`
	Mailbox    string `toml:"mailbox"`
	UseTLS     bool   `toml:"use_tls"`
	PollPeriod string `toml:"poll_period"` // e.g. "5m" - how often the connector checks for new mail
}

// DigestConfig schedules the recurring Merkle re-digest job.
type DigestConfig struct {
	Schedule  string `toml:"schedule"`   // cron expression
	OutputDir string `toml:"output_dir"` // directory PDF digests are written to
}

// LoggingConfig configures arbor's writers and level.
type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Format     string   `toml:"format"`      // "json" or "text"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // default: "15:04:05.000"
}

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
				TTL:  24 * time.Hour,
			},
		},
		Archive: ArchiveConfig{
			RenderedPrefix: "/thread/",
			RewriteLinks:   true,
		},
		IMAP: IMAPConfig{
			Port:       993,
			UseTLS:     true,
			Mailbox:    "INBOX",
			PollPeriod: "5m",
		},
		Digest: DigestConfig{
			Schedule:  "0 0 * * *", // daily at midnight
			OutputDir: "./data/digests",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: []string{"stdout", "file"},
		},
	}
}

// LoadFromFile loads configuration with priority: default -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	config := NewDefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(config)
	return config, nil
}

// LoadFromFiles loads configuration with priority: default -> file1 -> file2
// -> ... -> env. Later files override fields set by earlier ones. Mirrors
// the repeatable -config flag pattern used by cmd/mailbeautify.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()
	for _, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(config)
	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("MAILBEAUTIFY_ENV"); env != "" {
		config.Environment = env
	}
	if port := os.Getenv("MAILBEAUTIFY_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("MAILBEAUTIFY_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if badgerPath := os.Getenv("MAILBEAUTIFY_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}
	if archiveHost := os.Getenv("MAILBEAUTIFY_ARCHIVE_HOST"); archiveHost != "" {
		config.Archive.Host = archiveHost
	}
	if imapHost := os.Getenv("MAILBEAUTIFY_IMAP_HOST"); imapHost != "" {
		config.IMAP.Host = imapHost
	}
	if imapUser := os.Getenv("MAILBEAUTIFY_IMAP_USERNAME"); imapUser != "" {
		config.IMAP.Username = imapUser
	}
	if imapPass := os.Getenv("MAILBEAUTIFY_IMAP_PASSWORD"); imapPass != "" {
		config.IMAP.Password = imapPass
	}
	if level := os.Getenv("MAILBEAUTIFY_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("MAILBEAUTIFY_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// IsProduction returns true if the environment is set to production.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// DeepCloneConfig creates a deep copy of the Config struct, to prevent
// mutations of a config shared across the server and background jobs.
func DeepCloneConfig(c *Config) *Config {
	if c == nil {
		return nil
	}
	clone := *c
	if len(c.Logging.Output) > 0 {
		clone.Logging.Output = make([]string, len(c.Logging.Output))
		copy(clone.Logging.Output, c.Logging.Output)
	}
	return &clone
}
