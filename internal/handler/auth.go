package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arbelos/fieldbook/internal/auth"
	"github.com/arbelos/fieldbook/internal/config"
	"github.com/arbelos/fieldbook/internal/middleware"
	"github.com/arbelos/fieldbook/internal/model"
	"github.com/arbelos/fieldbook/internal/repository"
	"github.com/arbelos/fieldbook/internal/session"
	"github.com/arbelos/fieldbook/internal/utils"
)

// AuthHandler bundles dependencies for the account and session endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Users    UserStore
	Sessions session.Store
}

func NewAuthHandler(cfg config.Config, users UserStore, sessions session.Store) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Sessions: sessions}
}

// ----- DTOs -----

type registerReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}
type tokenReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
type tokenResp struct {
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Username  string     `json:"username"`
	Role      string     `json:"role"`
}
type profileResp struct {
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Register handles POST /register: create an account.  Self-registration
// always yields a contractor; a role field in the request body is ignored.
// Admin accounts are provisioned out of band, never over this endpoint.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}
	role := string(auth.RoleContractor)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	err := h.Users.Create(ctx, req.Username, req.Password, strings.TrimSpace(req.FullName), strings.TrimSpace(req.Email), role, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	return c.JSON(http.StatusCreated, profileFrom(u))
}

// Token handles POST /token: exchange username+password for a bearer token.
// Deactivated accounts cannot log in.
func (h *AuthHandler) Token(c echo.Context) error {
	var req tokenReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if !u.IsActive {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "account deactivated"})
	}

	token, err := h.Sessions.Issue(ctx, u.Username)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	resp := tokenResp{Token: token, Username: u.Username, Role: u.Role}
	if h.Cfg.SessionTTLMin > 0 {
		exp := time.Now().UTC().Add(time.Duration(h.Cfg.SessionTTLMin) * time.Minute)
		resp.ExpiresAt = &exp
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout handles POST /logout: revoke the presented bearer token.  Runs
// behind BearerAuth, so the raw token is already in context.
func (h *AuthHandler) Logout(c echo.Context) error {
	token, _ := c.Get(middleware.CtxToken).(string)
	if token == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Sessions.Revoke(ctx, token); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me handles GET /user: return the caller's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	username, _, ok := caller(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	u, err := h.Users.GetByUsername(ctx, username)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	return c.JSON(http.StatusOK, profileFrom(u))
}

func profileFrom(u model.User) profileResp {
	return profileResp{
		Username:  u.Username,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
