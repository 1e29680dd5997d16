// Package server holds the HTTP server configuration.
//
// While the serve command handles the server startup, this package defines the
// configuration structure for server settings: the listen port, the API key that
// protects the trigger endpoints, and the job name reported in notifications.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by the serve and sync commands.
package server
