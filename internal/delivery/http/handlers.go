package http

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/8endit/city-ops/internal/domain"
	"github.com/8endit/city-ops/internal/observability"
	"github.com/8endit/city-ops/internal/service"
	"github.com/8endit/city-ops/internal/state"
)

// Handler contains all HTTP handlers
type Handler struct {
	store    *state.Store
	corridor *service.CorridorService
	metrics  *observability.Metrics
}

// NewHandler creates a new handler
func NewHandler(store *state.Store, corridor *service.CorridorService, metrics *observability.Metrics) *Handler {
	return &Handler{
		store:    store,
		corridor: corridor,
		metrics:  metrics,
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// GetKPI returns the derived corridor metrics for the current state
func (h *Handler) GetKPI(c *fiber.Ctx) error {
	h.metrics.KPIReads.Inc()
	return c.JSON(service.ComputeKPI(h.store.Snapshot()))
}

// UpdateEvent mutates the shared state record from an event request
func (h *Handler) UpdateEvent(c *fiber.Ctx) error {
	var req domain.EventUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if fields := req.Validate(); fields != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":   true,
			"message": "validation failed",
			"fields":  fields,
		})
	}

	snap := h.store.Update(req)

	h.metrics.EventUpdates.WithLabelValues(string(snap.EventType)).Inc()
	if snap.EventActive {
		h.metrics.EventActive.Set(1)
	} else {
		h.metrics.EventActive.Set(0)
	}

	return c.JSON(fiber.Map{
		"ok":    true,
		"state": snap,
	})
}

// GetSegments returns the corridor map annotated with congestion levels
func (h *Handler) GetSegments(c *fiber.Ctx) error {
	fc, err := h.corridor.Segments(h.store.Snapshot())
	if err != nil {
		h.metrics.SegmentReadFailures.Inc()
		log.Printf("Failed to load corridor map: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load corridor map")
	}

	h.metrics.SegmentReads.Inc()
	return c.JSON(fc)
}
