// path: controllers/crimes.go
package controllers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"streetsafety/engine"
	"streetsafety/geocode"
	"streetsafety/models"
)

// CrimeController exposes the crime record lifecycle over HTTP. The engine
// owns classification, sorting and the vote state machine; this layer only
// binds payloads, resolves coordinates when the client sent none, and maps
// engine errors to statuses.
type CrimeController struct {
	Engine   *engine.Engine
	Geocoder geocode.Geocoder
}

func NewCrimeController(eng *engine.Engine, g geocode.Geocoder) *CrimeController {
	return &CrimeController{Engine: eng, Geocoder: g}
}

// Submit handles POST /api/crimes.
func (h *CrimeController) Submit(c *fiber.Ctx) error {
	var p models.CrimePayload
	if err := c.BodyParser(&p); err != nil {
		return badReq(c, "invalid JSON")
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	// Coordinates come from the client's geocode step; when absent we
	// resolve the address ourselves before touching the engine.
	if p.Latitude == 0 && p.Longitude == 0 {
		if strings.TrimSpace(p.Address) == "" {
			return badReq(c, "missing required field \"address\"")
		}
		lat, lng, err := h.Geocoder.Resolve(ctx, p.Address)
		if errors.Is(err, geocode.ErrNotFound) {
			return badReq(c, "address could not be located, try a more specific address")
		}
		if err != nil {
			return serverErr(c, err)
		}
		p.Latitude, p.Longitude = lat, lng
	}

	crime, err := h.Engine.Submit(ctx, engine.SubmitInput{
		Type:      p.Type,
		Location:  p.Location,
		Address:   p.Address,
		Details:   p.Details,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
	})
	var verr *engine.ValidationError
	if errors.As(err, &verr) {
		return badReq(c, verr.Error())
	}
	if err != nil {
		return serverErr(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(crime)
}

// List handles GET /api/crimes: the full feed, upvotes descending.
func (h *CrimeController) List(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 8*time.Second)
	defer cancel()

	crimes, err := h.Engine.ListSorted(ctx)
	if err != nil {
		return serverErr(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(crimes)
}

// Upvote handles POST /api/crimes/:id/upvote.
func (h *CrimeController) Upvote(c *fiber.Ctx) error {
	return h.vote(c, engine.Up)
}

// Downvote handles POST /api/crimes/:id/downvote.
func (h *CrimeController) Downvote(c *fiber.Ctx) error {
	return h.vote(c, engine.Down)
}

func (h *CrimeController) vote(c *fiber.Ctx, dir engine.Direction) error {
	var p models.VotePayload
	if err := c.BodyParser(&p); err != nil {
		return badReq(c, "invalid JSON")
	}
	voter := strings.TrimSpace(p.UserEmail)
	if voter == "" {
		return badReq(c, "missing userEmail")
	}

	ctx, cancel := context.WithTimeout(c.Context(), 8*time.Second)
	defer cancel()

	crime, err := h.Engine.Vote(ctx, c.Params("id"), voter, dir)
	switch {
	case errors.Is(err, engine.ErrNotFound):
		return notFound(c, "crime not found")
	case errors.Is(err, engine.ErrAlreadyVoted):
		// Idempotent no-op: same shape the frontend gets on a fresh vote,
		// plus a message it can surface.
		return c.Status(fiber.StatusOK).JSON(models.VoteResp{
			Message: alreadyVotedMessage(dir),
			Crime:   crime,
		})
	case err != nil:
		return serverErr(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(models.VoteResp{Crime: crime})
}

func alreadyVotedMessage(dir engine.Direction) string {
	if dir == engine.Up {
		return "You have already upvoted this crime"
	}
	return "You have already downvoted this crime"
}
