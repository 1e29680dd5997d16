// Package config provides configuration management for report-sync.
//
// It utilizes Viper for loading configuration from environment variables,
// an optional .env file and an optional config.yaml.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, job name)
//   - Database: warehouse connection (sqlserver, mysql, postgres or sqlite)
//   - Storage: S3/MinIO credentials and bucket for S3 drop locations
//   - Remote: SFTP drop location and transport selection
//   - Export: HTTP export trigger settings
//   - Notify: SMTP and Slack notification settings
//   - Log: Logging level, format and file
//   - Sync: staging, timezone, floor policy, table naming and readiness policy
//   - Reports: the report feeds (config.yaml only)
//
// Every scalar key has a default taken from its struct tag and can be overridden
// with an environment variable named after its path (sync.staging_dir ->
// SYNC_STAGING_DIR). Environment variables win over config.yaml.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Sync.StagingDir)
package config
