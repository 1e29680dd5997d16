package database

// Config holds configuration for the warehouse connection.
type Config struct {
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"1433"`
	// User is the database user.
	User string `mapstructure:"user" default:"sa"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name (or file path for sqlite).
	Name string `mapstructure:"name" default:"warehouse"`
	// Driver is the database driver (sqlserver, mysql, postgres, sqlite).
	Driver string `mapstructure:"driver" default:"sqlserver"`
	// TimeoutSeconds is the connection and I/O timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
