package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/linkmetry/linkmetry/internal/auth"
	"github.com/linkmetry/linkmetry/internal/user"
)

// UserHandler handles account registration and login.
type UserHandler struct {
	users  *user.Service
	tokens *auth.TokenIssuer
	logger *zap.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users *user.Service, tokens *auth.TokenIssuer, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

func (h *UserHandler) Signup(ctx context.Context, req *SignupRequest) (*SignupResponse, error) {
	u, err := h.users.Signup(ctx, req.Body.Firstname, req.Body.Lastname, req.Body.Email, req.Body.Password)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return nil, huma.Error400BadRequest("email already registered")
		}

		h.logger.Error("failed to create account", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to create account")
	}

	resp := &SignupResponse{}
	resp.Body.UserID = u.ID

	return resp, nil
}

func (h *UserHandler) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	u, err := h.users.Login(ctx, req.Body.Email, req.Body.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			return nil, huma.Error400BadRequest("invalid email or password")
		}

		h.logger.Error("failed to log in", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to log in")
	}

	token, err := h.tokens.Issue(u.ID)
	if err != nil {
		h.logger.Error("failed to issue token", zap.String("userId", u.ID), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to log in")
	}

	resp := &LoginResponse{}
	resp.Body.Token = token
	resp.Body.User = UserPayload{
		ID:        u.ID,
		Firstname: u.FirstName,
		Lastname:  u.LastName,
		Email:     u.Email,
	}

	return resp, nil
}
