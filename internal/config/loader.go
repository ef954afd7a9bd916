package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/procmine/docflow/internal/db"
)

// Source kinds the pipeline can ingest.
const (
	SourceDelimited = "delimited"
	SourceTableSet  = "tableset"
	SourceEventLog  = "eventlog"
)

// Config is the full pipeline configuration: which source kind to load, how
// to read it, how to synthesize, where to write, and optionally where to
// persist.
type Config struct {
	Source    string
	InputDir  string
	InputPath string

	Delimiter string
	Encoding  string
	MaxRows   int

	Seed        int64
	TopVariants int

	OutputDir   string
	Indent      bool
	Collections bool

	Persist        bool
	MigrationsPath string
	Database       db.Config
}

// DefaultConfig returns the defaults a bare invocation runs with.
func DefaultConfig() Config {
	return Config{
		Source:         SourceDelimited,
		InputDir:       "./data",
		Seed:           42,
		TopVariants:    20,
		OutputDir:      "./out",
		Indent:         true,
		MigrationsPath: "./migrations",
		Database:       db.DefaultConfig(),
	}
}

// Load reads config.yaml from configPath and applies environment overrides
// with the DOCFLOW_ prefix (DOCFLOW_SOURCE, DOCFLOW_SEED, ...). A missing
// config file is not an error; defaults plus environment apply.
func Load(configPath string) (Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv()
	v.SetEnvPrefix("DOCFLOW")

	for _, key := range []string{
		"source", "input_dir", "input_path",
		"delimiter", "encoding", "max_rows",
		"seed", "top_variants",
		"output_dir", "indent", "collections",
		"persist", "migrations_path",
		"database.host", "database.port", "database.user",
		"database.password", "database.dbname", "database.sslmode",
	} {
		if err := v.BindEnv(key); err != nil {
			return cfg, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if v.IsSet("source") {
		cfg.Source = v.GetString("source")
	}
	if v.IsSet("input_dir") {
		cfg.InputDir = v.GetString("input_dir")
	}
	if v.IsSet("input_path") {
		cfg.InputPath = v.GetString("input_path")
	}
	if v.IsSet("delimiter") {
		cfg.Delimiter = v.GetString("delimiter")
	}
	if v.IsSet("encoding") {
		cfg.Encoding = v.GetString("encoding")
	}
	if v.IsSet("max_rows") {
		cfg.MaxRows = v.GetInt("max_rows")
	}
	if v.IsSet("seed") {
		cfg.Seed = v.GetInt64("seed")
	}
	if v.IsSet("top_variants") {
		cfg.TopVariants = v.GetInt("top_variants")
	}
	if v.IsSet("output_dir") {
		cfg.OutputDir = v.GetString("output_dir")
	}
	if v.IsSet("indent") {
		cfg.Indent = v.GetBool("indent")
	}
	if v.IsSet("collections") {
		cfg.Collections = v.GetBool("collections")
	}
	if v.IsSet("persist") {
		cfg.Persist = v.GetBool("persist")
	}
	if v.IsSet("migrations_path") {
		cfg.MigrationsPath = v.GetString("migrations_path")
	}
	if v.IsSet("database.host") {
		cfg.Database.Host = v.GetString("database.host")
	}
	if v.IsSet("database.port") {
		cfg.Database.Port = v.GetInt("database.port")
	}
	if v.IsSet("database.user") {
		cfg.Database.User = v.GetString("database.user")
	}
	if v.IsSet("database.password") {
		cfg.Database.Password = v.GetString("database.password")
	}
	if v.IsSet("database.dbname") {
		cfg.Database.DBName = v.GetString("database.dbname")
	}
	if v.IsSet("database.sslmode") {
		cfg.Database.SSLMode = v.GetString("database.sslmode")
	}

	return cfg, validate(cfg)
}

func validate(cfg Config) error {
	switch cfg.Source {
	case SourceDelimited, SourceTableSet, SourceEventLog:
	default:
		return fmt.Errorf("unknown source kind %q", cfg.Source)
	}
	if cfg.Source == SourceEventLog && cfg.InputPath == "" {
		return fmt.Errorf("source %q requires input_path", cfg.Source)
	}
	return nil
}
