// path: controllers/proximity.go
package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"streetsafety/engine"
	"streetsafety/geo"
)

// ProximityController answers "what is near me" questions. Two independent
// policies: nearest-record display (kilometers) and radius alerting
// (meters, 500 m default). Neither mutates the record set.
type ProximityController struct {
	Engine *engine.Engine
}

func NewProximityController(eng *engine.Engine) *ProximityController {
	return &ProximityController{Engine: eng}
}

// Nearest handles GET /api/crimes/nearest?lat=&lng=.
func (h *ProximityController) Nearest(c *fiber.Ctx) error {
	user, ok := userPoint(c)
	if !ok {
		return badReq(c, "missing or invalid lat/lng")
	}

	ctx, cancel := context.WithTimeout(c.Context(), 8*time.Second)
	defer cancel()

	crimes, lerr := h.Engine.ListSorted(ctx)
	if lerr != nil {
		return serverErr(c, lerr)
	}

	result, ok := geo.Nearest(user, crimes)
	if !ok {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "No crimes reported yet",
		})
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// Alerts handles GET /api/crimes/alerts?lat=&lng=&radius_m=.
func (h *ProximityController) Alerts(c *fiber.Ctx) error {
	user, ok := userPoint(c)
	if !ok {
		return badReq(c, "missing or invalid lat/lng")
	}

	radius := 0.0
	if v, ok := queryFloat(c, "radius_m"); ok {
		radius = v
	}

	ctx, cancel := context.WithTimeout(c.Context(), 8*time.Second)
	defer cancel()

	crimes, lerr := h.Engine.ListSorted(ctx)
	if lerr != nil {
		return serverErr(c, lerr)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"alerts": geo.RadiusAlerts(user, crimes, radius),
	})
}

func userPoint(c *fiber.Ctx) (geo.Point, bool) {
	lat, ok := queryFloat(c, "lat")
	if !ok {
		return geo.Point{}, false
	}
	lng, ok := queryFloat(c, "lng")
	if !ok {
		return geo.Point{}, false
	}
	return geo.Point{Lat: lat, Lng: lng}, true
}
