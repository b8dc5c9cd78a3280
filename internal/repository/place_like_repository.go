package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
)

// PlaceLikeRepo persists which places a user marked as favorites.
type PlaceLikeRepo struct{ DB *sql.DB }

func NewPlaceLikeRepo(db *sql.DB) *PlaceLikeRepo { return &PlaceLikeRepo{DB: db} }

// Like records a favorite. Liking the same place twice is a no-op.
func (r *PlaceLikeRepo) Like(ctx context.Context, userID, placeID string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO place_likes (id, user_id, place_id) VALUES (?,?,?)",
		uuid.NewString(), userID, placeID)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return nil
	}
	return err
}

// Unlike removes a favorite. The bool reports whether a row existed.
func (r *PlaceLikeRepo) Unlike(ctx context.Context, userID, placeID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM place_likes WHERE user_id=? AND place_id=?", userID, placeID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListByUser returns the place ids a user has liked, newest first.
func (r *PlaceLikeRepo) ListByUser(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT place_id FROM place_likes WHERE user_id=? ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
