package handler // handler defines http handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-account-service/internal/model"
)

// profilePictureURL is where an authenticated user fetches their own
// picture; profile responses carry it (or null) under profile_photo.
const profilePictureURL = "/api/users/profile-picture"

// userPart is the public projection of a user returned by every endpoint.
// The password hash never appears here.
type userPart struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"isActive"`
	Gender       *string   `json:"gender"`
	Age          *int      `json:"age"`
	ProfilePhoto *string   `json:"profile_photo"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toUserPart(u model.User) userPart {
	var photo *string
	if u.HasPicture {
		url := profilePictureURL
		photo = &url
	}
	return userPart{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         u.Role,
		IsActive:     u.IsActive,
		Gender:       u.Gender,
		Age:          u.Age,
		ProfilePhoto: photo,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// getUserID extracts the authenticated user's id placed in context by the
// JWT middleware.
func getUserID(c echo.Context) (string, error) {
	if id, ok := c.Get("user_id").(string); ok && id != "" {
		return id, nil
	}
	return "", errors.New("invalid user_id in context")
}

// getRole extracts the authenticated user's role from context.
func getRole(c echo.Context) string {
	role, _ := c.Get("role").(string)
	return role
}

// parseUUIDParam validates a path parameter as an RFC-4122 UUID and
// returns its canonical form. Malformed values are rejected before any
// repository call.
func parseUUIDParam(c echo.Context, name string) (string, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// canTouchUser reports whether the caller may mutate the target user's
// resources: owners may, and admins override.
func canTouchUser(c echo.Context, targetID string) bool {
	uid, err := getUserID(c)
	if err != nil {
		return false
	}
	return uid == targetID || getRole(c) == model.RoleAdmin
}

// badUUID is the canned 400 response for malformed id parameters.
func badUUID(c echo.Context, name string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": name + " must be a valid UUID"})
}
