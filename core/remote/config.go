package remote

// Config holds configuration for the remote drop location.
type Config struct {
	// Kind selects the transport (sftp, s3, none).
	Kind string `mapstructure:"kind" default:"sftp"`
	// Host is the SFTP host.
	Host string `mapstructure:"host" default:""`
	// Port is the SFTP port.
	Port int `mapstructure:"port" default:"22"`
	// User is the SFTP user.
	User string `mapstructure:"user" default:""`
	// Password is the SFTP password; ignored when KeyFile is set.
	Password string `mapstructure:"password" default:""`
	// KeyFile is an optional private key used instead of the password.
	KeyFile string `mapstructure:"key_file" default:""`
	// KnownHostsFile enables host key verification when set.
	KnownHostsFile string `mapstructure:"known_hosts_file" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Supported transport kinds.
const (
	KindSFTP = "sftp"
	KindS3   = "s3"
	// KindNone skips fetching; files are staged by other means.
	KindNone = "none"
)
