package handler

import (
	"context"
	"time"

	"github.com/iliyamo/user-account-service/internal/model"
)

// The handler package depends on store interfaces rather than the concrete
// repositories so auth and user flows can be exercised in tests with
// in-memory fakes. The repository types satisfy these without adapters.

// UserStore persists and retrieves user records, including the profile
// picture blob.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id string) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id string, upd model.UserUpdate) (model.User, error)
	Delete(ctx context.Context, id string) (bool, error)
	GetProfilePicture(ctx context.Context, id string) ([]byte, error)
	UpdateProfilePicture(ctx context.Context, id string, data []byte) (bool, error)
	DeleteProfilePicture(ctx context.Context, id string) (bool, error)
}

// TokenStore persists refresh token hashes.
type TokenStore interface {
	StoreRefresh(ctx context.Context, userID, tokenHash string, exp time.Time) error
	ValidateRefresh(ctx context.Context, tokenHash string) (string, error)
	DeleteRefresh(ctx context.Context, tokenHash string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}

// PlaceLikeStore persists a user's favorite places.
type PlaceLikeStore interface {
	Like(ctx context.Context, userID, placeID string) error
	Unlike(ctx context.Context, userID, placeID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]string, error)
}
