package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// LikePlace handles POST /api/users/place-likes/:placeId. Liking a place
// twice is a no-op, so the endpoint always answers 201 for a valid id.
func (h *UserHandler) LikePlace(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	placeID, err := parseUUIDParam(c, "placeId")
	if err != nil {
		return badUUID(c, "placeId")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Cfg.DBQueryTimeout)
	defer cancel()

	if err := h.Likes.Like(ctx, uid, placeID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "place liked"})
}

// UnlikePlace handles DELETE /api/users/place-likes/:placeId.
func (h *UserHandler) UnlikePlace(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	placeID, err := parseUUIDParam(c, "placeId")
	if err != nil {
		return badUUID(c, "placeId")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Cfg.DBQueryTimeout)
	defer cancel()

	ok, err := h.Likes.Unlike(ctx, uid, placeID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "place like not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "place unliked"})
}

// ListPlaceLikes handles GET /api/users/place-likes.
func (h *UserHandler) ListPlaceLikes(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Cfg.DBQueryTimeout)
	defer cancel()

	likes, err := h.Likes.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"placeIds": likes})
}
