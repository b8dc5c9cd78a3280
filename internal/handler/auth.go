package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-account-service/internal/config"
	"github.com/iliyamo/user-account-service/internal/model"
	"github.com/iliyamo/user-account-service/internal/queue"
	"github.com/iliyamo/user-account-service/internal/repository"
	queue_publisher "github.com/iliyamo/user-account-service/internal/service"
	"github.com/iliyamo/user-account-service/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  UserStore
	Tokens TokenStore
}

func NewAuthHandler(cfg config.Config, u UserStore, t TokenStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t}
}

// ----- DTOs -----

type registerReq struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

type authResp struct {
	User         userPart `json:"user"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
}

const (
	accessCookie  = "accessToken"
	refreshCookie = "refreshToken"
)

// setAuthCookies attaches both tokens as scoped cookies. The secure flag
// comes from config so local development over plain HTTP keeps working.
func (h *AuthHandler) setAuthCookies(c echo.Context, access utils.AccessToken, refresh utils.RefreshToken) {
	c.SetCookie(&http.Cookie{
		Name: accessCookie, Value: access.Token, Path: "/",
		Expires: access.Exp, HttpOnly: true,
		SameSite: http.SameSiteLaxMode, Secure: h.Cfg.CookieSecure,
	})
	c.SetCookie(&http.Cookie{
		Name: refreshCookie, Value: refresh.Raw, Path: "/",
		Expires: refresh.Exp, HttpOnly: true,
		SameSite: http.SameSiteLaxMode, Secure: h.Cfg.CookieSecure,
	})
}

// clearAuthCookies expires both cookies on the client.
func (h *AuthHandler) clearAuthCookies(c echo.Context) {
	for _, name := range []string{accessCookie, refreshCookie} {
		c.SetCookie(&http.Cookie{
			Name: name, Value: "", Path: "/",
			Expires: time.Unix(0, 0), MaxAge: -1, HttpOnly: true,
			SameSite: http.SameSiteLaxMode, Secure: h.Cfg.CookieSecure,
		})
	}
}

// Register handles POST /api/auth/register and creates a regular user.
func (h *AuthHandler) Register(c echo.Context) error {
	return h.register(c, model.RoleUser)
}

// RegisterAdmin handles POST /api/auth/register-admin. The route is gated
// by the auth and admin middleware; the handler itself only differs in the
// role it assigns.
func (h *AuthHandler) RegisterAdmin(c echo.Context) error {
	return h.register(c, model.RoleAdmin)
}

func (h *AuthHandler) register(c echo.Context, role string) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	email, err := model.NewEmail(req.Email)
	if err != nil {
		return jsonError(c, err)
	}
	password, err := model.NewPassword(req.Password)
	if err != nil {
		return jsonError(c, err)
	}
	first := strings.TrimSpace(req.FirstName)
	last := strings.TrimSpace(req.LastName)
	if first == "" || last == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "firstName and lastName are required"})
	}

	hash, err := utils.HashPassword(password.String(), h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Cfg.DBQueryTimeout)
	defer cancel()

	u := model.User{
		Email:        email.String(),
		PasswordHash: hash,
		FirstName:    first,
		LastName:     last,
		Role:         role,
		IsActive:     true,
	}
	if err := h.Users.Create(ctx, &u); err != nil {
		return jsonError(c, err)
	}

	// Fire-and-forget; registration must not fail because the broker is down.
	go func(u model.User) {
		_ = queue_publisher.PublishUserRegistered(context.Background(), queue.UserRegisteredEvent{
			UserID:       u.ID,
			Email:        u.Email,
			FirstName:    u.FirstName,
			LastName:     u.LastName,
			Role:         u.Role,
			RegisteredAt: u.CreatedAt.UTC().Format(time.RFC3339),
		})
	}(u)

	return c.JSON(http.StatusCreated, toUserPart(u))
}

// Login handles POST /api/auth/login. An unknown email and a wrong
// password produce the identical response so the endpoint cannot be used
// to enumerate accounts.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Cfg.DBQueryTimeout)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if err == repository.ErrUserNotFound {
			// Same response as a wrong password; no account enumeration.
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
	}
	if err := h.Tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save refresh failed"})
	}

	h.setAuthCookies(c, access, refresh)
	return c.JSON(http.StatusOK, authResp{
		User:         toUserPart(u),
		AccessToken:  access.Token,
		RefreshToken: refresh.Raw, // raw back to client; only the hash is stored
	})
}

// Refresh handles POST /api/auth/refresh: validate against the store,
// rotate the refresh token, return a new pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	raw := h.presentedRefreshToken(c)
	if raw == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refreshToken required"})
	}
	hash := utils.HashRefreshRaw(raw)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Cfg.DBQueryTimeout)
	defer cancel()

	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return jsonError(c, err)
	}
	_ = h.Tokens.DeleteRefresh(ctx, hash)

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	next, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
	}
	if err := h.Tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(next.Raw), next.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save refresh failed"})
	}

	h.setAuthCookies(c, access, next)
	return c.JSON(http.StatusOK, authResp{
		User:         toUserPart(u),
		AccessToken:  access.Token,
		RefreshToken: next.Raw,
	})
}

// Logout handles POST /api/auth/logout (protected). The presented refresh
// token is deleted from the store; deleting an absent token is not an
// error, so logging out twice succeeds. Both cookies are cleared either way.
func (h *AuthHandler) Logout(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	if raw := h.presentedRefreshToken(c); raw != "" {
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.Cfg.DBQueryTimeout)
		defer cancel()
		if err := h.Tokens.DeleteRefresh(ctx, utils.HashRefreshRaw(raw)); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
		}
	}

	h.clearAuthCookies(c)
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out successfully"})
}

// presentedRefreshToken pulls the refresh token from the cookie or, failing
// that, the JSON body.
func (h *AuthHandler) presentedRefreshToken(c echo.Context) string {
	if ck, err := c.Cookie(refreshCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	var req refreshReq
	_ = c.Bind(&req)
	return strings.TrimSpace(req.RefreshToken)
}
