// path: routes/routes.go
package routes

import (
	"streetsafety/controllers"

	"github.com/gofiber/fiber/v2"
)

// Register attaches all API endpoints to the app.
func Register(app *fiber.App, auth *controllers.AuthController, crimes *controllers.CrimeController, prox *controllers.ProximityController) {
	api := app.Group("/api")

	api.Post("/register", auth.Register)
	api.Post("/login", auth.Login)

	api.Post("/crimes", crimes.Submit)
	api.Get("/crimes", crimes.List)

	// Proximity routes go before the :id routes so "nearest"/"alerts"
	// are never parsed as record ids.
	api.Get("/crimes/nearest", prox.Nearest)
	api.Get("/crimes/alerts", prox.Alerts)

	api.Post("/crimes/:id/upvote", crimes.Upvote)
	api.Post("/crimes/:id/downvote", crimes.Downvote)
}
