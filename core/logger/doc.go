// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and integrates with the Fiber web framework used by the serve command.
//
// # Run Capture
//
// A sync run reports its outcome together with everything it logged. NewCapture builds the
// same logger as New but tees every entry into an in-memory Capture buffer, which the run
// wrapper hands to the notifier once the run finishes.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID from a Fiber context and attaches it to the
// log entry, so all logs related to a triggered run can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//   - File: an extra output path such as app.log
//
// # Usage
//
//	log, capture, _ := logger.NewCapture(&logger.Config{Level: "info"})
//	log.Info("Sync started")
//	body := capture.String()
package logger
