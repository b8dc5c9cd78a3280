package model

import "time"

// Role values stored in users.role and carried in the JWT "role" claim.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Gender values accepted for the optional users.gender column.
const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
	GenderOther  = "OTHER"
)

// ValidRole reports whether s is one of the known role names.
func ValidRole(s string) bool {
	return s == RoleUser || s == RoleAdmin
}

// ValidGender reports whether s is one of the known gender names.
func ValidGender(s string) bool {
	return s == GenderMale || s == GenderFemale || s == GenderOther
}

// User represents a row in the `users` table.  IDs are RFC-4122 UUIDs
// assigned by the repository at insert time.  PasswordHash is the bcrypt
// digest of the user's password; the plaintext is never persisted.
// HasPicture is derived (profile_picture IS NOT NULL) so list and profile
// queries do not have to fetch the blob itself.
//
// Fields:
//  ID           – users.id (CHAR(36) UUID)
//  Email        – users.email, unique, stored exactly as registered
//  PasswordHash – users.password_hash
//  FirstName    – users.first_name
//  LastName     – users.last_name
//  Role         – users.role (USER or ADMIN)
//  IsActive     – users.is_active
//  Gender       – users.gender (nullable)
//  Age          – users.age (nullable, 0–130)
//  HasPicture   – whether users.profile_picture is non-null
//  CreatedAt    – users.created_at
//  UpdatedAt    – users.updated_at
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         string
	IsActive     bool
	Gender       *string
	Age          *int
	HasPicture   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserUpdate carries the partial field set accepted by the admin update
// endpoint.  Nil pointers leave the corresponding column untouched.
type UserUpdate struct {
	FirstName *string
	LastName  *string
	Role      *string
	IsActive  *bool
	Gender    *string
	Age       *int
}

// RefreshToken models an entry in the `refresh_tokens` table.  The opaque
// token handed to the client is not stored; only its SHA-256 hex digest.
// Rows past ExpiresAt are treated as absent on lookup, and logout deletes
// rows outright; nothing updates a token in place.
type RefreshToken struct {
	ID        uint64
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// PlaceLike links a user to a place they marked as a favorite.  The pair
// (UserID, PlaceID) is unique; rows cascade away with the owning user.
type PlaceLike struct {
	ID        string
	UserID    string
	PlaceID   string
	CreatedAt time.Time
}
