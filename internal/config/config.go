package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	DataDir  string `mapstructure:"data_dir"`  // holds talentflow.db
	LogLevel string `mapstructure:"log_level"` // debug, info, warn, error
	PageSize int    `mapstructure:"page_size"`
	// Seeding of an empty store
	SeedOnStart     bool   `mapstructure:"seed_on_start"`
	SeedJobs        int    `mapstructure:"seed_jobs"`
	SeedCandidates  int    `mapstructure:"seed_candidates"`
	SeedAssessments int    `mapstructure:"seed_assessments"`
	SeedRandomSeed  uint64 `mapstructure:"seed_random_seed"`
}

const (
	dirName   = ".talentflow"
	fileName  = "config.yaml"
	envPrefix = "TALENTFLOW"
)

var (
	AppConfig *Config

	v          *viper.Viper
	configFile string
)

// Initialize loads or creates the configuration file in ~/.talentflow
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	return InitializeIn(filepath.Join(homeDir, dirName))
}

// InitializeIn loads or creates config.yaml inside dir. TALENTFLOW_*
// environment variables override values from the file.
func InitializeIn(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, fileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := createDefaultConfig(path, dir); err != nil {
			return err
		}
	}

	nv := viper.New()
	nv.SetConfigFile(path)
	nv.SetConfigType("yaml")
	nv.SetEnvPrefix(envPrefix)
	nv.AutomaticEnv()

	nv.SetDefault("data_dir", dir)
	nv.SetDefault("log_level", "info")
	nv.SetDefault("page_size", 10)
	nv.SetDefault("seed_on_start", true)
	nv.SetDefault("seed_jobs", 25)
	nv.SetDefault("seed_candidates", 1000)
	nv.SetDefault("seed_assessments", 3)
	nv.SetDefault("seed_random_seed", 42)

	if err := nv.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	if err := nv.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	v, configFile, AppConfig = nv, path, cfg
	return nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(path, dir string) error {
	defaultConfig := fmt.Sprintf(`# Talentflow Configuration
data_dir: %q

# Logging: debug, info, warn, error
log_level: info

# Default page size for list commands
page_size: 10

# Seed an empty store on start
seed_on_start: true
seed_jobs: 25
seed_candidates: 1000
seed_assessments: 3
seed_random_seed: 42
`, dir)
	return os.WriteFile(path, []byte(defaultConfig), 0600)
}

// Keys lists every supported configuration key.
func Keys() []string {
	return []string{
		"data_dir", "log_level", "page_size",
		"seed_on_start", "seed_jobs", "seed_candidates", "seed_assessments", "seed_random_seed",
	}
}

// Set updates a configuration value and writes it to the config file
func Set(key, value string) error {
	if v == nil {
		return fmt.Errorf("config not initialized")
	}
	if !slices.Contains(Keys(), key) {
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys(), ", "))
	}

	// Decode the candidate settings on a scratch instance so a rejected
	// value never reaches v.
	check := viper.New()
	for _, k := range Keys() {
		check.Set(k, v.Get(k))
	}
	check.Set(key, value)
	cfg := &Config{}
	if err := check.Unmarshal(cfg); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	v.Set(key, value)
	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	AppConfig = cfg
	return nil
}

// Get retrieves a configuration value
func Get(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}

// GetConfigPath returns the path to the loaded config file
func GetConfigPath() string {
	return configFile
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
