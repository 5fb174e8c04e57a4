// path: controllers/auth.go
package controllers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"streetsafety/database"
	"streetsafety/models"
)

// UserStore is the account persistence the auth handlers need.
type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthController handles registration and login. Login deliberately returns
// only the email for client-side storage (no session token); the frontend
// sends it back as the voter identifier on vote calls.
type AuthController struct {
	Users UserStore
}

func NewAuthController(users UserStore) *AuthController {
	return &AuthController{Users: users}
}

// Register handles POST /api/register.
func (h *AuthController) Register(c *fiber.Ctx) error {
	var p models.RegisterPayload
	if err := c.BodyParser(&p); err != nil {
		return badReq(c, "invalid JSON")
	}

	// Normalize before validation.
	p.Username = strings.TrimSpace(p.Username)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))

	if p.Username == "" || p.Email == "" || p.Password == "" {
		return badReq(c, "username, email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return serverErr(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Context(), 8*time.Second)
	defer cancel()

	user := &models.User{
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.Users.Insert(ctx, user); err != nil {
		if errors.Is(err, database.ErrEmailTaken) {
			return badReq(c, "Registration failed: email already registered")
		}
		return serverErr(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User registered"})
}

// Login handles POST /api/login.
func (h *AuthController) Login(c *fiber.Ctx) error {
	var p models.LoginPayload
	if err := c.BodyParser(&p); err != nil {
		return badReq(c, "invalid JSON")
	}
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))

	ctx, cancel := context.WithTimeout(c.Context(), 8*time.Second)
	defer cancel()

	user, err := h.Users.FindByEmail(ctx, p.Email)
	if errors.Is(err, database.ErrUserNotFound) {
		return unauthorized(c, "Invalid credentials")
	}
	if err != nil {
		return serverErr(c, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(p.Password)) != nil {
		return unauthorized(c, "Invalid credentials")
	}

	return c.Status(fiber.StatusOK).JSON(models.LoginResp{
		Message:   "Login successful",
		UserEmail: user.Email,
	})
}
