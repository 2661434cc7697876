// Package config loads the aktdoclix application configuration.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// EnvPrefix prefixes every environment override, e.g. AKTDOCLIX_DB_FILE.
const EnvPrefix = "AKTDOCLIX"

// FileName is the optional config file looked up in the home directory.
const FileName = "aktdoclix"

// Config holds the application paths and ambient settings.
type Config struct {
	Env  string
	Home string

	DBFile       string
	BackupFile   string
	SettingsFile string
	FolderRoot   string

	Log            LogConfig
	SearchDebounce time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads the configuration for the given home directory. An empty home
// falls back to AKTDOCLIX_HOME and then to the working directory.
func Load(home string) (*Config, error) {
	_ = godotenv.Load()

	if home == "" {
		home = os.Getenv(EnvPrefix + "_HOME")
	}
	if home == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		home = wd
	}
	home, err := filepath.Abs(home)
	if err != nil {
		return nil, err
	}
	_ = godotenv.Load(filepath.Join(home, ".env"))

	v := viper.New()
	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(home)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{
		Env:          v.GetString("env"),
		Home:         home,
		DBFile:       v.GetString("db_file"),
		BackupFile:   v.GetString("backup_file"),
		SettingsFile: v.GetString("settings_file"),
		FolderRoot:   v.GetString("folder_root"),
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		SearchDebounce: v.GetDuration("search_debounce"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", EnvDevelopment)
	v.SetDefault("db_file", "Aktdoclix.db")
	v.SetDefault("backup_file", "archiv_backup_v59.db")
	v.SetDefault("settings_file", "settings.json")
	v.SetDefault("folder_root", "Datenbank")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("search_debounce", "300ms")
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Env, validation.In(EnvDevelopment, EnvProduction)),
		validation.Field(&c.Home, validation.Required),
		validation.Field(&c.DBFile, validation.Required),
		validation.Field(&c.SettingsFile, validation.Required),
		validation.Field(&c.FolderRoot, validation.Required),
		validation.Field(&c.Log),
		validation.Field(&c.SearchDebounce, validation.Required.Error("must be positive"), validation.Min(time.Millisecond)),
	)
}

// Validate checks the logging values.
func (l LogConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Format, validation.In("console", "json")),
	)
}

// DBPath is the record store location.
func (c *Config) DBPath() string { return c.resolve(c.DBFile) }

// BackupPath is the startup backup location, or "" when backups are disabled.
func (c *Config) BackupPath() string {
	if c.BackupFile == "" {
		return ""
	}
	return c.resolve(c.BackupFile)
}

// SettingsPath is the settings file location.
func (c *Config) SettingsPath() string { return c.resolve(c.SettingsFile) }

// FolderPath is the base folder holding one scan folder per record.
func (c *Config) FolderPath() string { return c.resolve(c.FolderRoot) }

func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Home, name)
}
