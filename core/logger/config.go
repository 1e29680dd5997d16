package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format is the log encoding (console, json).
	Format string `mapstructure:"format" default:"console"`
	// File is an optional path the log is also written to (e.g. app.log).
	File string `mapstructure:"file" default:""`
}
