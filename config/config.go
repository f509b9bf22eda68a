package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SimonHalvdansson/ENTSOE-Mirror/logging"
	"github.com/spf13/viper"
)

type AppConfigApi struct {
	Address string
	Port    int16
	// Directory the read-side file server exposes. Country payloads
	// live in a subdirectory of it (see Fetch.OutputDir).
	RootDir *string `mapstructure:"root_dir"`
}

func (a AppConfigApi) GetRootDir() string {
	if a.RootDir == nil {
		return "."
	}
	return *a.RootDir
}

type AppConfigDatabase struct {
	Path string
	// How many days of run history to keep before purging
	RunRetentionDays *int `mapstructure:"run_retention_days"`
}

func (d AppConfigDatabase) GetRunRetentionDays() int {
	if d.RunRetentionDays == nil {
		return 90
	}
	return *d.RunRetentionDays
}

type AppConfigEntsoe struct {
	// Security token for the transparency platform, normally set
	// through the ENTSOE_API_KEY environment variable
	ApiKey  string  `mapstructure:"api_key"`
	BaseUrl *string `mapstructure:"base_url"`
	// Per-query timeout; market queries are slower than the rate
	// fetch so this default is the longer of the two
	TimeoutSeconds *int `mapstructure:"timeout_seconds"`
}

func (e AppConfigEntsoe) GetBaseUrl() string {
	if e.BaseUrl == nil {
		return ""
	}
	return *e.BaseUrl
}

func (e AppConfigEntsoe) GetTimeout() time.Duration {
	if e.TimeoutSeconds == nil {
		return 30 * time.Second
	}
	return time.Duration(*e.TimeoutSeconds) * time.Second
}

type AppConfigEcb struct {
	Url            *string
	TimeoutSeconds *int `mapstructure:"timeout_seconds"`
}

func (e AppConfigEcb) GetUrl() string {
	if e.Url == nil {
		return ""
	}
	return *e.Url
}

func (e AppConfigEcb) GetTimeout() time.Duration {
	if e.TimeoutSeconds == nil {
		return 10 * time.Second
	}
	return time.Duration(*e.TimeoutSeconds) * time.Second
}

type AppConfigFetch struct {
	// Where the per-country JSON files are written
	OutputDir *string `mapstructure:"output_dir"`
	// Cron spec for the scheduled batch in service mode. Day-ahead
	// prices publish around 13:00 CET, so default a bit after that.
	RunAt *string `mapstructure:"run_at"`
}

func (f AppConfigFetch) GetOutputDir() string {
	if f.OutputDir == nil {
		return "data/spotprice"
	}
	return *f.OutputDir
}

func (f AppConfigFetch) GetRunAt() string {
	if f.RunAt == nil {
		return "15 14 * * *"
	}
	return *f.RunAt
}

type AppConfigLogging struct {
	// Min log level for database : "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	DbLevel *string `mapstructure:"db_level"`
	// Log attributes format: "TEXT", "JSON", default: "JSON"
	DbAttrsFormat *string `mapstructure:"db_attrs_format"`
	// Maximum number of log entries in the database, default: 10000
	DbMaxEntries *int `mapstructure:"db_max_entries"`
	// Min log level for console: "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	ConsoleLevel *string `mapstructure:"console_level"`
}

func (l AppConfigLogging) GetDbLevel() slog.Level {
	return logging.LevelFromString(l.DbLevel)
}

func (l AppConfigLogging) GetDbAttrsFormat() logging.LogAttrFormat {
	if l.DbAttrsFormat == nil {
		return "JSON"
	}
	if strings.EqualFold(*l.DbAttrsFormat, "text") {
		return "TEXT"
	}
	return "JSON"
}

func (l AppConfigLogging) GetDbMaxEntries() int {
	if l.DbMaxEntries == nil {
		return 10000
	}
	return *l.DbMaxEntries
}

func (l AppConfigLogging) GetConsoleLevel() slog.Level {
	return logging.LevelFromString(l.ConsoleLevel)
}

type AppConfig struct {
	Api      AppConfigApi
	Database AppConfigDatabase
	Entsoe   AppConfigEntsoe
	Ecb      AppConfigEcb
	Fetch    AppConfigFetch
	Logging  AppConfigLogging
}

func Load(path string) (*AppConfig, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("config")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Known keys must exist for AutomaticEnv to reach Unmarshal, so
	// a plain environment-driven run works without a config file.
	v.SetDefault("api.address", "127.0.0.1")
	v.SetDefault("api.port", 8000)
	v.SetDefault("database.path", "data/entsoe-mirror.db")
	v.SetDefault("entsoe.api_key", "")

	var c AppConfig

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config file: %w", err)
	}

	return &c, nil
}
