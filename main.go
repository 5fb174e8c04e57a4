// path: main.go
package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"streetsafety/controllers"
	"streetsafety/database"
	"streetsafety/engine"
	"streetsafety/geocode"
	"streetsafety/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")

	if err := database.Connect(context.Background()); err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	eng := engine.New(database.NewCrimeStore(), engine.DefaultClassifier())
	auth := controllers.NewAuthController(database.NewUserStore())
	crimes := controllers.NewCrimeController(eng, geocode.NewClient(""))
	prox := controllers.NewProximityController(eng)

	app := fiber.New()
	app.Use(recover.New())

	// Log concise request lines
	app.Use(logger.New(logger.Config{
		TimeFormat: "15:04:05",
	}))

	// CORS (dev-friendly)
	app.Use(cors.New(cors.Config{
		AllowOrigins:     getenv("CORS_ORIGINS", "http://localhost:3000, http://localhost:5000"),
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "*",
		AllowCredentials: false,
		MaxAge:           int((12 * time.Hour).Seconds()),
	}))

	// Map frontend (markers, forms)
	app.Static("/", getenv("STATIC_DIR", "./frontend"))

	// Health
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })

	// API
	routes.Register(app, auth, crimes, prox)

	addr := ":" + getenv("PORT", "5000")
	log.Printf("API listening on %s", addr)
	log.Fatal(app.Listen(addr))
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}
