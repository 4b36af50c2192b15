package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	User       string
	Database   DatabaseConfig
	Classifier ClassifierConfig
	Mapping    MappingConfig
	Thresholds ThresholdsConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// ClassifierConfig holds classifier model settings.
type ClassifierConfig struct {
	ModelPath string `mapstructure:"model_path"`
	AutoTrain bool   `mapstructure:"auto_train"`
}

// MappingConfig holds category mapping settings. An empty TablePath means
// the built-in table.
type MappingConfig struct {
	TablePath string `mapstructure:"table_path"`
}

// ThresholdsConfig controls how predictions are treated downstream.
type ThresholdsConfig struct {
	AutoConfirm float64 `mapstructure:"auto_confirm"`
	ReviewFlag  float64 `mapstructure:"review_flag"`
}

// Load reads configuration from .env, config file, and environment. Env
// var overrides use the prefix MINIBOOKS_.
func Load() (Config, error) {
	// A local .env is a development convenience; missing is fine.
	_ = godotenv.Load()

	v := viper.New()

	dataDir := filepath.Join(os.Getenv("HOME"), ".local", "share", "minibooks")
	v.SetDefault("user", "default")
	v.SetDefault("database.path", filepath.Join(dataDir, "minibooks.db"))
	v.SetDefault("classifier.model_path", filepath.Join(dataDir, "classifier.json"))
	v.SetDefault("classifier.auto_train", true)
	v.SetDefault("mapping.table_path", "")
	v.SetDefault("thresholds.auto_confirm", 0.95)
	v.SetDefault("thresholds.review_flag", 0.70)

	v.SetConfigType("yaml")

	cfgPath := os.Getenv("MINIBOOKS_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "minibooks"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("MINIBOOKS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// DataDir returns the directory holding the database and model files.
func (c Config) DataDir() string {
	return filepath.Dir(c.Database.Path)
}
