package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-account-service/internal/config"
	"github.com/iliyamo/user-account-service/internal/repository"
)

// PictureHandler serves profile picture upload, retrieval and deletion.
// Mutations target /api/users/:id/profile-picture and are allowed for the
// user themselves or an admin; retrieval is always of the caller's own
// picture.
type PictureHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewPictureHandler(cfg config.Config, u UserStore) *PictureHandler {
	return &PictureHandler{Cfg: cfg, Users: u}
}

// sniffImage returns the detected content type if data is an accepted
// image format, or "" otherwise. Detection looks at the leading bytes
// only, never at the client-supplied filename or Content-Type.
func sniffImage(data []byte) string {
	ct := http.DetectContentType(data)
	if ct == "image/png" || ct == "image/jpeg" {
		return ct
	}
	return ""
}

// Upload handles POST and PUT /api/users/:id/profile-picture. POST answers
// 201, PUT 200; the store operation is the same either way.
func (h *PictureHandler) Upload(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badUUID(c, "id")
	}
	if !canTouchUser(c, id) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
	}
	if fh.Size > h.Cfg.MaxUploadBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "file too large"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable file"})
	}
	defer f.Close()

	// Size in the multipart header is client-supplied; cap the read too.
	data, err := io.ReadAll(io.LimitReader(f, h.Cfg.MaxUploadBytes+1))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable file"})
	}
	if int64(len(data)) > h.Cfg.MaxUploadBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "file too large"})
	}
	if sniffImage(data) == "" {
		return c.JSON(http.StatusUnsupportedMediaType, echo.Map{"error": "only PNG and JPEG images are accepted"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Cfg.DBQueryTimeout)
	defer cancel()

	ok, err := h.Users.UpdateProfilePicture(ctx, id, data)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	status := http.StatusOK
	if c.Request().Method == http.MethodPost {
		status = http.StatusCreated
	}
	return c.JSON(status, echo.Map{"message": "profile picture updated"})
}

// Delete handles DELETE /api/users/:id/profile-picture. A user without a
// stored picture answers 404.
func (h *PictureHandler) Delete(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badUUID(c, "id")
	}
	if !canTouchUser(c, id) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Cfg.DBQueryTimeout)
	defer cancel()

	ok, err := h.Users.DeleteProfilePicture(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no profile picture"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "profile picture deleted"})
}

// GetOwn handles GET /api/users/profile-picture and streams the caller's
// picture with the sniffed content type.
func (h *PictureHandler) GetOwn(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Cfg.DBQueryTimeout)
	defer cancel()

	data, err := h.Users.GetProfilePicture(ctx, uid)
	if err == repository.ErrUserNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	if len(data) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no profile picture"})
	}
	ct := sniffImage(data)
	if ct == "" {
		// Stored before format checks existed; still serve it.
		ct = http.DetectContentType(data)
	}
	return c.Blob(http.StatusOK, ct, data)
}
