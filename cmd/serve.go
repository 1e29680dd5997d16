package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"report-sync/core/loader"
	"report-sync/core/logger"
	"report-sync/core/middleware/auth"
	"report-sync/core/middleware/rayid"
	"report-sync/feature/reportsync"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the report sync HTTP server",
	Long:  `Starts the HTTP server exposing health, status and on-demand sync endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap(false)
		if err != nil {
			return err
		}
		logg := app.logger
		defer func() { _ = logg.Sync() }()

		// 1. Initialize Fiber App
		server := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 2. Initialize Feature Loader
		mgr := loader.NewManager(logg)
		mgr.Register(reportsync.NewFeature(app.job, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		server.Use(rayid.New())

		// 2. Logging Middleware (Zap + RayID)
		server.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Health (Public)
		server.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})

		// 4. Auth (Protect API)
		if !app.cfg.Server.IsProtected() {
			logg.Warn("No API key configured; sync endpoints are unprotected")
		}
		server.Use(auth.New(auth.Config{ApiKey: app.cfg.Server.ApiKey}))

		// 5. Load Features
		if err := mgr.LoadAll(server); err != nil {
			return err
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", app.cfg.Server.Port))
			if err := server.Listen(":" + app.cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return server.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
