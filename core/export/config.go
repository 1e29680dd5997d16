package export

// Config holds configuration for triggering report exports.
type Config struct {
	// Token is sent as a bearer token with every export request.
	Token string `mapstructure:"token" default:""`
	// TimeoutSeconds bounds a single export download; 0 disables the timeout.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"300"`
	// RetryCount is the number of retries on transport errors and 429/5xx responses.
	RetryCount int `mapstructure:"retry_count" default:"3"`
}
