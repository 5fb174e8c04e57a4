// path: controllers/helpers.go
package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type ErrorResp struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func badReq(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResp{OK: false, Error: msg})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(ErrorResp{OK: false, Error: msg})
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResp{OK: false, Error: msg})
}

func serverErr(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResp{OK: false, Error: err.Error()})
}

// queryFloat parses a required float query param; ok is false when the
// param is missing or malformed.
func queryFloat(c *fiber.Ctx, key string) (float64, bool) {
	v := c.Query(key)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
