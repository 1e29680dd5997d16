package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"report-sync/core/database"
	"report-sync/core/export"
	"report-sync/core/logger"
	"report-sync/core/notify"
	"report-sync/core/remote"
	"report-sync/core/server"
	"report-sync/core/storage"
	"report-sync/feature/reportsync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Database holds configuration for the warehouse connection.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for the S3-compatible drop location.
	Storage storage.Config `mapstructure:"storage"`
	// Remote holds configuration for the remote drop location.
	Remote remote.Config `mapstructure:"remote"`
	// Export holds configuration for HTTP report exports.
	Export export.Config `mapstructure:"export"`
	// Notify holds configuration for run notifications.
	Notify notify.Config `mapstructure:"notify"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Sync holds configuration for sync runs.
	Sync reportsync.Config `mapstructure:"sync"`
	// Reports lists the report feeds; only read from the config file.
	Reports []reportsync.Report `mapstructure:"reports"`
}

// LoadConfig loads configuration from environment variables, .env and config.yaml.
// Environment variables take precedence over the file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// 2. Optional config.yaml holding the report list
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Map environment variables to nested keys (e.g. SYNC_STAGING_DIR -> sync.staging_dir)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		switch field.Type.Kind() {
		case reflect.Struct:
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		case reflect.Slice, reflect.Map:
			// Lists come from the config file; an empty default would shadow them.
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
