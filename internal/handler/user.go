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
	queue_publisher "github.com/iliyamo/user-account-service/internal/service"
)

// UserHandler bundles dependencies for profile and admin user management
// endpoints.
type UserHandler struct {
	Cfg    config.Config
	Users  UserStore
	Tokens TokenStore
	Likes  PlaceLikeStore
}

func NewUserHandler(cfg config.Config, u UserStore, t TokenStore, l PlaceLikeStore) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: u, Tokens: t, Likes: l}
}

// profileResp extends the public projection with the caller's liked places.
type profileResp struct {
	userPart
	PlaceLikes []string `json:"placeLikes"`
}

// Profile handles GET /api/users/profile and returns the authenticated
// user's own record.
func (h *UserHandler) Profile(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Cfg.DBQueryTimeout)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return jsonError(c, err)
	}
	likes, err := h.Likes.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, profileResp{userPart: toUserPart(u), PlaceLikes: likes})
}

// List handles GET /api/users (admin) and returns every user, newest first.
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Cfg.DBQueryTimeout)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	out := make([]userPart, 0, len(users))
	for _, u := range users {
		out = append(out, toUserPart(u))
	}
	return c.JSON(http.StatusOK, out)
}

// AdminOnly handles GET /api/users/admin-only. It exists to verify the
// middleware chain end to end.
func (h *UserHandler) AdminOnly(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "this route is for administrators only"})
}

// Get handles GET /api/users/:id (admin).
func (h *UserHandler) Get(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badUUID(c, "id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Cfg.DBQueryTimeout)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, toUserPart(u))
}

type updateUserReq struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Role      *string `json:"role"`
	IsActive  *bool   `json:"isActive"`
	Gender    *string `json:"gender"`
	Age       *int    `json:"age"`
}

// Update handles PUT /api/users/:id (admin) and applies a partial update.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badUUID(c, "id")
	}
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	upd := model.UserUpdate{IsActive: req.IsActive, Age: req.Age}
	if req.FirstName != nil {
		v := strings.TrimSpace(*req.FirstName)
		if v == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "firstName cannot be empty"})
		}
		upd.FirstName = &v
	}
	if req.LastName != nil {
		v := strings.TrimSpace(*req.LastName)
		if v == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "lastName cannot be empty"})
		}
		upd.LastName = &v
	}
	if req.Role != nil {
		v := strings.ToUpper(strings.TrimSpace(*req.Role))
		if !model.ValidRole(v) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "role must be USER or ADMIN"})
		}
		upd.Role = &v
	}
	if req.Gender != nil {
		v := strings.ToUpper(strings.TrimSpace(*req.Gender))
		if !model.ValidGender(v) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "gender must be MALE, FEMALE or OTHER"})
		}
		upd.Gender = &v
	}
	if req.Age != nil && (*req.Age < 0 || *req.Age > 130) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "age must be between 0 and 130"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Cfg.DBQueryTimeout)
	defer cancel()

	u, err := h.Users.Update(ctx, id, upd)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, toUserPart(u))
}

// Delete handles DELETE /api/users/:id (admin). The target's refresh
// tokens are revoked explicitly so the invariant does not depend on the
// store cascading deletes; place likes cascade at the schema level.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badUUID(c, "id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Cfg.DBQueryTimeout)
	defer cancel()

	if err := h.Tokens.DeleteAllForUser(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	ok, err := h.Users.Delete(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	go func(id string) {
		_ = queue_publisher.PublishUserDeleted(context.Background(), queue.UserDeletedEvent{
			UserID:    id,
			DeletedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}(id)

	return c.JSON(http.StatusOK, echo.Map{"message": "user deleted"})
}
