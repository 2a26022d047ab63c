package http

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/8endit/city-ops/internal/delivery/ws"
)

// SetupRoutes configures all HTTP and WebSocket routes
func SetupRoutes(app *fiber.App, handler *Handler, streamer *ws.Streamer) {
	api := app.Group("/api")
	{
		api.Get("/health", handler.HealthCheck)
		api.Get("/kpi", handler.GetKPI)
		api.Post("/event", handler.UpdateEvent)
		api.Get("/map/segments", handler.GetSegments)
	}

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/stream", streamer.Handler())
}
