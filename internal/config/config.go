// Package config provides Viper-based configuration loading for the game server.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig holds the network listeners of the server.
type ServerConfig struct {
	// HTTPHost is the bind address for the JSON API and static files.
	HTTPHost string `mapstructure:"http_host"`
	// HTTPPort is the TCP port for the JSON API.
	HTTPPort int `mapstructure:"http_port"`
	// GRPCHost is the bind address for the gRPC game service.
	GRPCHost string `mapstructure:"grpc_host"`
	// GRPCPort is the TCP port for the gRPC game service; 0 disables it.
	GRPCPort int `mapstructure:"grpc_port"`
	// StaticDir is served under /static/; empty disables static files.
	StaticDir string `mapstructure:"static_dir"`
	// AllowedOrigin is sent as Access-Control-Allow-Origin.
	AllowedOrigin   string        `mapstructure:"allowed_origin"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// HTTPAddr returns the "host:port" HTTP listen address.
//
// Postcondition: Returns a non-empty string in "host:port" format.
func (s ServerConfig) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", s.HTTPHost, s.HTTPPort)
}

// GRPCAddr returns the "host:port" gRPC listen address.
//
// Postcondition: Returns a non-empty string in "host:port" format.
func (s ServerConfig) GRPCAddr() string {
	return fmt.Sprintf("%s:%d", s.GRPCHost, s.GRPCPort)
}

// GameConfig holds gameplay and session settings.
type GameConfig struct {
	// TuningPath is a YAML tuning catalog; empty uses the embedded default.
	TuningPath string `mapstructure:"tuning_path"`
	// TickResolution is how often each session's autonomous work is advanced.
	TickResolution time.Duration `mapstructure:"tick_resolution"`
	// AchievementPollInterval is the period of the time-windowed achievement check.
	AchievementPollInterval time.Duration `mapstructure:"achievement_poll_interval"`
	// ScriptsDir holds Lua achievement predicates; empty disables scripting.
	ScriptsDir string `mapstructure:"scripts_dir"`
	// ScriptInstructionLimit bounds each Lua call; 0 uses the scripting default.
	ScriptInstructionLimit int `mapstructure:"script_instruction_limit"`
	// IdleSessionTTL evicts sessions with no activity for this long; 0 keeps them forever.
	IdleSessionTTL time.Duration `mapstructure:"idle_session_ttl"`
	// EventBuffer is the per-subscriber event channel capacity.
	EventBuffer int `mapstructure:"event_buffer"`
}

// StorageConfig selects and configures the completed-run store.
type StorageConfig struct {
	// Driver is one of "jsonfile", "sqlite" or "postgres".
	Driver string `mapstructure:"driver"`
	// ResultsDir receives JSON result files, including client submissions.
	ResultsDir string `mapstructure:"results_dir"`
	// SQLitePath is the database file of the sqlite driver.
	SQLitePath string `mapstructure:"sqlite_path"`
	// LeaderboardSize is the number of runs returned by the leaderboard.
	LeaderboardSize int `mapstructure:"leaderboard_size"`
	// SaveTimeout bounds each asynchronous save of a completed run.
	SaveTimeout time.Duration `mapstructure:"save_timeout"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	// AutoMigrate applies the embedded schema migrations at startup.
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Game     GameConfig     `mapstructure:"game"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// Validate checks all configuration invariants. The database section is only
// checked when the postgres storage driver is selected.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateServer(c.Server); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateStorage(c.Storage); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Storage.Driver == "postgres" {
		if err := validateDatabase(c.Database); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateServer(s ServerConfig) error {
	var errs []string
	if s.HTTPPort < 1 || s.HTTPPort > 65535 {
		errs = append(errs, fmt.Sprintf("server.http_port must be 1-65535, got %d", s.HTTPPort))
	}
	if s.GRPCPort < 0 || s.GRPCPort > 65535 {
		errs = append(errs, fmt.Sprintf("server.grpc_port must be 0-65535, got %d", s.GRPCPort))
	}
	if s.GRPCPort > 0 && s.GRPCPort == s.HTTPPort && s.GRPCHost == s.HTTPHost {
		errs = append(errs, "server.grpc_port must differ from server.http_port")
	}
	if s.ReadTimeout < 0 {
		errs = append(errs, "server.read_timeout must not be negative")
	}
	if s.WriteTimeout < 0 {
		errs = append(errs, "server.write_timeout must not be negative")
	}
	if s.ShutdownTimeout <= 0 {
		errs = append(errs, "server.shutdown_timeout must be positive")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.TickResolution <= 0 {
		errs = append(errs, "game.tick_resolution must be positive")
	}
	if g.AchievementPollInterval <= 0 {
		errs = append(errs, "game.achievement_poll_interval must be positive")
	}
	if g.ScriptInstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("game.script_instruction_limit must be >= 0, got %d", g.ScriptInstructionLimit))
	}
	if g.IdleSessionTTL < 0 {
		errs = append(errs, "game.idle_session_ttl must not be negative")
	}
	if g.EventBuffer < 1 {
		errs = append(errs, fmt.Sprintf("game.event_buffer must be >= 1, got %d", g.EventBuffer))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateStorage(s StorageConfig) error {
	var errs []string
	validDrivers := map[string]bool{"jsonfile": true, "sqlite": true, "postgres": true}
	if !validDrivers[s.Driver] {
		errs = append(errs, fmt.Sprintf("storage.driver must be one of [jsonfile, sqlite, postgres], got %q", s.Driver))
	}
	if s.ResultsDir == "" {
		errs = append(errs, "storage.results_dir must not be empty")
	}
	if s.Driver == "sqlite" && s.SQLitePath == "" {
		errs = append(errs, "storage.sqlite_path must not be empty for the sqlite driver")
	}
	if s.LeaderboardSize < 1 {
		errs = append(errs, fmt.Sprintf("storage.leaderboard_size must be >= 1, got %d", s.LeaderboardSize))
	}
	if s.SaveTimeout <= 0 {
		errs = append(errs, "storage.save_timeout must be positive")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with VALOU_ prefix
	v.SetEnvPrefix("VALOU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance holding only the default values.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.http_host", "localhost")
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.grpc_host", "127.0.0.1")
	v.SetDefault("server.grpc_port", 50051)
	v.SetDefault("server.static_dir", "static")
	v.SetDefault("server.allowed_origin", "*")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("game.tuning_path", "")
	v.SetDefault("game.tick_resolution", "100ms")
	v.SetDefault("game.achievement_poll_interval", "1s")
	v.SetDefault("game.scripts_dir", "")
	v.SetDefault("game.script_instruction_limit", 0)
	v.SetDefault("game.idle_session_ttl", "2h")
	v.SetDefault("game.event_buffer", 64)

	v.SetDefault("storage.driver", "jsonfile")
	v.SetDefault("storage.results_dir", "game_results")
	v.SetDefault("storage.sqlite_path", "valouniversaire.db")
	v.SetDefault("storage.leaderboard_size", 20)
	v.SetDefault("storage.save_timeout", "5s")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "valou")
	v.SetDefault("database.password", "valou")
	v.SetDefault("database.name", "valouniversaire")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")
	v.SetDefault("database.auto_migrate", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
