package reportsync

import (
	"errors"
	"strings"

	"report-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for report syncs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/reports", h.HandleListReports)
	app.Post("/sync", h.HandleSync)
}

// HandleListReports returns the plan of every configured report.
func (h *Handler) HandleListReports(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"reports": h.service.Plan(c.Context()),
	})
}

// HandleSync triggers a run.
// Query: report (comma separated tables, optional), dry_run (bool).
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	opts := RunOptions{DryRun: c.QueryBool("dry_run")}
	for _, name := range strings.Split(c.Query("report"), ",") {
		if name = strings.TrimSpace(name); name != "" {
			opts.Reports = append(opts.Reports, name)
		}
	}

	run, shared, err := h.service.Trigger(c.Context(), opts)
	if errors.Is(err, ErrUnknownReport) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err != nil {
		l.Error("Triggered sync failed", zap.Error(err), zap.Bool("shared", shared))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":  err.Error(),
			"run":    run,
			"shared": shared,
		})
	}

	l.Info("Triggered sync finished", zap.Bool("shared", shared))
	return c.JSON(fiber.Map{
		"run":    run,
		"shared": shared,
	})
}
