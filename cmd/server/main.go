package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"

	httpdelivery "github.com/8endit/city-ops/internal/delivery/http"
	"github.com/8endit/city-ops/internal/delivery/ws"
	"github.com/8endit/city-ops/internal/observability"
	"github.com/8endit/city-ops/internal/service"
	"github.com/8endit/city-ops/internal/state"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Configuration
	cfg := loadConfig()

	// Dependency Injection: single shared state record plus services
	store := state.NewStore()
	corridorSvc := service.NewCorridorService(cfg.CorridorPath)
	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	streamer := ws.NewStreamer(store, clockwork.NewRealClock(), cfg.StreamInterval, metrics)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "CityOps API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	// Wide-open demo policy. Credentials stay off: Fiber rejects the
	// wildcard-origin-with-credentials combination.
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Routes
	httpdelivery.SetupRoutes(app, httpdelivery.NewHandler(store, corridorSvc, metrics), streamer)

	// Graceful shutdown
	go func() {
		port := cfg.Port
		if port == "" {
			port = "8080"
		}
		log.Printf("Server starting on :%s", port)
		if err := app.Listen(":" + port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited gracefully")
}

type Config struct {
	Port           string
	CorridorPath   string
	StreamInterval time.Duration
	Env            string
}

func loadConfig() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		CorridorPath:   getEnv("CORRIDOR_PATH", "data/corridor.geojson"),
		StreamInterval: getEnvDuration("STREAM_INTERVAL", time.Second),
		Env:            getEnv("GO_ENV", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
		log.Printf("Invalid %s, using default %s", key, defaultValue)
	}
	return defaultValue
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
