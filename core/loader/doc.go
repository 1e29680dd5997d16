// Package loader provides the plugin-like feature loading system.
//
// Features register their HTTP routes through a common interface so the
// server command does not need to know about each of them.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Manager
//
// The Manager holds the registry of available features. It handles:
//   - Registration of features via Register()
//   - Loading of enabled features via LoadAll(), in registration order
//
// The report sync feature is the only one today; a feature without any
// configured report reports itself disabled and registers no routes.
package loader
