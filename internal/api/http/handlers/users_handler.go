package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/media-discovery/internal/api/dto"
	"github.com/spec-kit/media-discovery/internal/api/envelope"
	"github.com/spec-kit/media-discovery/internal/domain"
	"github.com/spec-kit/media-discovery/internal/service"
)

// UsersHandler exposes account endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// Signup handles POST /user/signup.
func (h *UsersHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	result, err := h.users.Signup(c.UserContext(), service.SignupInput{
		Username:    req.Username,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		return err
	}
	return envelope.Created(c, authResponse(result))
}

// Signin handles POST /user/signin.
func (h *UsersHandler) Signin(c *fiber.Ctx) error {
	var req dto.SigninRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	result, err := h.users.Signin(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return envelope.Created(c, authResponse(result))
}

// UpdatePassword handles PUT /user/update-password.
func (h *UsersHandler) UpdatePassword(c *fiber.Ctx, identity domain.Identity) error {
	var req dto.UpdatePasswordRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	if err := h.users.UpdatePassword(c.UserContext(), identity, req.Password, req.NewPassword); err != nil {
		return err
	}
	return envelope.OK(c, nil)
}

// Info handles GET /user/info.
func (h *UsersHandler) Info(c *fiber.Ctx, identity domain.Identity) error {
	user, err := h.users.Info(c.UserContext(), identity)
	if err != nil {
		return err
	}
	return envelope.OK(c, userResponse(user))
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
	}
}

func authResponse(result *service.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		UserResponse: userResponse(result.User),
		Token:        result.Token.Value,
		ExpiresAt:    result.Token.ExpiresAt,
	}
}
