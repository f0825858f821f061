package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lcalzada-xor/duskboard/internal/core/domain"
	"gopkg.in/yaml.v3"
)

const envPrefix = "DUSK_"

// Config holds all application configuration.
type Config struct {
	Addr           string        `yaml:"addr"`
	BotURL         string        `yaml:"bot_url"`
	BotPassword    string        `yaml:"bot_password"`
	PollInterval   time.Duration `yaml:"poll_interval"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	HistoryLength  int           `yaml:"history_length"`
	HourlyReset    string        `yaml:"hourly_reset"`
	ImportMode     string        `yaml:"import_mode"`
	DBPath         string        `yaml:"db_path"`
	PersistHistory bool          `yaml:"persist_history"`
	GRPCPort       int           `yaml:"grpc_port"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	MountedTargets []string      `yaml:"mounted_targets"`
	Mock           bool          `yaml:"mock"`
	MockAddr       string        `yaml:"mock_addr"`
	Trace          bool          `yaml:"trace"`
	Debug          bool          `yaml:"debug"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() *Config {
	return &Config{
		Addr:           ":8080",
		BotURL:         "http://127.0.0.1:2609",
		BotPassword:    "password",
		PollInterval:   10 * time.Second,
		HistoryLength:  domain.DefaultHistoryLength,
		HourlyReset:    string(domain.HourlyResetNever),
		ImportMode:     string(domain.ImportReplace),
		DBPath:         getDefaultDBPath(),
		PersistHistory: true,
		GRPCPort:       9000,
		MockAddr:       "127.0.0.1:2609",
	}
}

// Load reads the process arguments and environment. Flags take precedence
// over environment variables, which take precedence over the YAML file.
func Load() (*Config, error) {
	return LoadFrom(os.Args[1:], os.LookupEnv)
}

// LoadFrom is Load with injectable arguments and environment lookup.
func LoadFrom(args []string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := Defaults()

	path, _ := lookup(envPrefix + "CONFIG")
	if p := configFlag(args); p != "" {
		path = p
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.mergeEnv(lookup); err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet("duskboard", flag.ContinueOnError)
	cfg.bindFlags(fs, path)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) bindFlags(fs *flag.FlagSet, path string) {
	fs.String("config", path, "Path to a YAML configuration file")
	fs.StringVar(&c.Addr, "addr", c.Addr, "HTTP server address")
	fs.StringVar(&c.BotURL, "bot", c.BotURL, "Base URL of the bot's local API")
	fs.StringVar(&c.BotPassword, "bot-password", c.BotPassword, "Password sent to the bot's config endpoint")
	fs.DurationVar(&c.PollInterval, "interval", c.PollInterval, "Stats poll interval")
	fs.DurationVar(&c.RequestTimeout, "timeout", c.RequestTimeout, "Bot request timeout (0 follows the poll interval)")
	fs.IntVar(&c.HistoryLength, "history", c.HistoryLength, "Number of samples kept in the rolling history")
	fs.StringVar(&c.HourlyReset, "hourly-reset", c.HourlyReset, "When hourly earnings reset (never, midnight)")
	fs.StringVar(&c.ImportMode, "import-mode", c.ImportMode, "How imported settings apply (replace, merge)")
	fs.StringVar(&c.DBPath, "db", c.DBPath, "Path to SQLite database")
	fs.BoolVar(&c.PersistHistory, "persist", c.PersistHistory, "Archive samples to the database")
	fs.IntVar(&c.GRPCPort, "grpc", c.GRPCPort, "gRPC health server port (0 disables)")
	fs.Func("origins", "Allowed WebSocket origins (comma separated)", func(s string) error {
		c.AllowedOrigins = splitList(s)
		return nil
	})
	fs.Func("targets", "Dashboard targets to mount (comma separated, empty mounts all)", func(s string) error {
		c.MountedTargets = splitList(s)
		return nil
	})
	fs.BoolVar(&c.Mock, "mock", c.Mock, "Run an in-process mock bot")
	fs.StringVar(&c.MockAddr, "mock-addr", c.MockAddr, "Listen address of the mock bot")
	fs.BoolVar(&c.Trace, "trace", c.Trace, "Export traces to stdout")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "Enable verbose debug logging")
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv(lookup func(string) (string, bool)) error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := lookup(envPrefix + key); ok {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(envPrefix + key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, key, err))
				return
			}
			*dst = b
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := lookup(envPrefix + key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, key, err))
				return
			}
			*dst = n
		}
	}
	duration := func(key string, dst *time.Duration) {
		if v, ok := lookup(envPrefix + key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, key, err))
				return
			}
			*dst = d
		}
	}
	list := func(key string, dst *[]string) {
		if v, ok := lookup(envPrefix + key); ok {
			*dst = splitList(v)
		}
	}

	str("ADDR", &c.Addr)
	str("BOT_URL", &c.BotURL)
	str("BOT_PASSWORD", &c.BotPassword)
	duration("POLL_INTERVAL", &c.PollInterval)
	duration("REQUEST_TIMEOUT", &c.RequestTimeout)
	integer("HISTORY_LENGTH", &c.HistoryLength)
	str("HOURLY_RESET", &c.HourlyReset)
	str("IMPORT_MODE", &c.ImportMode)
	str("DB", &c.DBPath)
	boolean("PERSIST_HISTORY", &c.PersistHistory)
	integer("GRPC_PORT", &c.GRPCPort)
	list("ALLOWED_ORIGINS", &c.AllowedOrigins)
	list("MOUNTED_TARGETS", &c.MountedTargets)
	boolean("MOCK", &c.Mock)
	str("MOCK_ADDR", &c.MockAddr)
	boolean("TRACE", &c.Trace)
	boolean("DEBUG", &c.Debug)

	return errors.Join(errs...)
}

// LoadTimeout bounds bot requests made outside the poll loop. It falls back
// to the poll interval when request_timeout is unset.
func (c *Config) LoadTimeout() time.Duration {
	if c.RequestTimeout > 0 {
		return c.RequestTimeout
	}
	return c.PollInterval
}

// Validate rejects values the application cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr must not be empty"))
	}
	if u, err := url.Parse(c.BotURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("bot_url %q is not an absolute URL", c.BotURL))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("poll_interval must be positive, got %s", c.PollInterval))
	}
	if c.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("request_timeout must not be negative, got %s", c.RequestTimeout))
	}
	if c.HistoryLength <= 0 {
		errs = append(errs, fmt.Errorf("history_length must be positive, got %d", c.HistoryLength))
	}
	if !domain.HourlyReset(c.HourlyReset).IsValid() {
		errs = append(errs, fmt.Errorf("hourly_reset %q must be never or midnight", c.HourlyReset))
	}
	if !domain.ImportMode(c.ImportMode).IsValid() {
		errs = append(errs, fmt.Errorf("import_mode %q must be replace or merge", c.ImportMode))
	}
	if c.GRPCPort < 0 || c.GRPCPort > 65535 {
		errs = append(errs, fmt.Errorf("grpc_port %d out of range", c.GRPCPort))
	}
	for _, t := range c.MountedTargets {
		if !domain.IsValidTarget(domain.Target(t)) {
			errs = append(errs, fmt.Errorf("unknown mounted target %q", t))
		}
	}
	if c.Mock && c.MockAddr == "" {
		errs = append(errs, errors.New("mock_addr must be set in mock mode"))
	}
	return errors.Join(errs...)
}

// configFlag finds -config before the full flag set is parsed, so the file
// can sit below env and flags.
func configFlag(args []string) string {
	for i, a := range args {
		name := strings.TrimLeft(a, "-")
		if name == a {
			continue
		}
		if v, ok := strings.CutPrefix(name, "config="); ok {
			return v
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// getDefaultDBPath returns the default database path in user's home directory.
func getDefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("Warning: Could not get user home directory, using current dir: %v", err)
		return "duskboard.db"
	}
	return filepath.Join(home, ".duskboard", "duskboard.db")
}
