// Package httpapi exposes the identity service as an HTTP JSON API. Every
// response body carries a result {code, message}; token fields are present
// only on success.
package httpapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/filmstack/idm/internal/logging"
	"github.com/filmstack/idm/internal/server/models"
	"github.com/filmstack/idm/internal/server/results"
	"github.com/filmstack/idm/internal/server/services"
)

// Identity is the subset of services.IdentityService the handlers use.
type Identity interface {
	Register(ctx context.Context, email string, pass []byte) (*models.User, error)
	Login(ctx context.Context, email string, pass []byte) (*services.TokenPair, error)
	Refresh(ctx context.Context, tokenValue string) (*services.RefreshResult, error)
	Authenticate(ctx context.Context, accessToken string) error
}

// Handler holds the HTTP endpoint implementations.
type Handler struct {
	svc Identity
	log logging.Logger
}

func NewHandler(svc Identity, log logging.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type authenticateRequest struct {
	AccessToken string `json:"accessToken"`
}

type response struct {
	Result       results.Result `json:"result"`
	AccessToken  string         `json:"accessToken,omitempty"`
	RefreshToken string         `json:"refreshToken,omitempty"`
}

func respond(c echo.Context, r results.Result) error {
	return c.JSON(r.Status, response{Result: r})
}

func (h *Handler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return respond(c, results.EmailInvalidFormat)
	}
	if r, ok := validateCredentials(req.Email, req.Password); !ok {
		return respond(c, r)
	}

	if _, err := h.svc.Register(ctx, req.Email, []byte(req.Password)); err != nil {
		r := results.FromError(err)
		if r == results.InternalError {
			h.log.Error(ctx, "register failed", "error", err)
		}
		return respond(c, r)
	}

	h.log.Info(ctx, "user registered", "email", req.Email)
	return respond(c, results.UserRegistered)
}

func (h *Handler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return respond(c, results.EmailInvalidFormat)
	}
	if r, ok := validateCredentials(req.Email, req.Password); !ok {
		return respond(c, r)
	}

	pair, err := h.svc.Login(ctx, req.Email, []byte(req.Password))
	if err != nil {
		r := results.FromError(err)
		if r == results.InternalError {
			h.log.Error(ctx, "login failed", "error", err)
		} else {
			h.log.Warn(ctx, "login rejected", "email", req.Email, "code", r.Code)
		}
		return respond(c, r)
	}

	h.log.Info(ctx, "user logged in", "email", req.Email)
	return c.JSON(http.StatusOK, response{
		Result:       results.UserLoggedIn,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h *Handler) Refresh(c echo.Context) error {
	ctx := c.Request().Context()

	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return respond(c, results.RefreshTokenInvalidFormat)
	}
	if r, ok := validateRefreshToken(req.RefreshToken); !ok {
		return respond(c, r)
	}

	res, err := h.svc.Refresh(ctx, req.RefreshToken)
	if err != nil {
		r := results.FromError(err)
		if r == results.InternalError {
			h.log.Error(ctx, "refresh failed", "error", err)
		}
		return respond(c, r)
	}

	return c.JSON(http.StatusOK, response{
		Result:       results.Renewed,
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	})
}

func (h *Handler) Authenticate(c echo.Context) error {
	ctx := c.Request().Context()

	var req authenticateRequest
	if err := c.Bind(&req); err != nil {
		return respond(c, results.AccessTokenInvalid)
	}

	if err := h.svc.Authenticate(ctx, req.AccessToken); err != nil {
		return respond(c, results.FromError(err))
	}
	return respond(c, results.AccessTokenValid)
}
