package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/user-account-service/internal/model"
)

// userColumns is the projection shared by every user query.  The blob is
// never selected here; only its presence.
const userColumns = "id,email,password_hash,first_name,last_name,role,is_active,gender,age,profile_picture IS NOT NULL,created_at,updated_at"

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

func scanUser(row *sql.Row) (model.User, error) {
	var (
		u      model.User
		gender sql.NullString
		age    sql.NullInt64
	)
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Role, &u.IsActive, &gender, &age, &u.HasPicture, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	if gender.Valid {
		u.Gender = &gender.String
	}
	if age.Valid {
		n := int(age.Int64)
		u.Age = &n
	}
	return u, nil
}

// Create inserts a user, assigning a fresh UUID.  The stored row is read
// back so the caller sees store-assigned timestamps.  A duplicate email
// yields ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (id, email, password_hash, first_name, last_name, role, is_active) VALUES (?,?,?,?,?,?,?)",
		id, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Role, u.IsActive)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrEmailExists
		}
		return err
	}
	created, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	*u = created
	return nil
}

// GetByEmail fetches a user by exact email.  The email column carries a
// binary collation, so both this lookup and the unique key are
// case-sensitive.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// List returns all users ordered newest first.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var (
			u      model.User
			gender sql.NullString
			age    sql.NullInt64
		)
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
			&u.Role, &u.IsActive, &gender, &age, &u.HasPicture, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		if gender.Valid {
			u.Gender = &gender.String
		}
		if age.Valid {
			n := int(age.Int64)
			u.Age = &n
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Update applies the non-nil fields of upd to the user row and returns the
// updated record.  A missing row yields ErrUserNotFound.
func (r *UserRepo) Update(ctx context.Context, id string, upd model.UserUpdate) (model.User, error) {
	var (
		sets []string
		args []interface{}
	)
	if upd.FirstName != nil {
		sets = append(sets, "first_name=?")
		args = append(args, *upd.FirstName)
	}
	if upd.LastName != nil {
		sets = append(sets, "last_name=?")
		args = append(args, *upd.LastName)
	}
	if upd.Role != nil {
		sets = append(sets, "role=?")
		args = append(args, *upd.Role)
	}
	if upd.IsActive != nil {
		sets = append(sets, "is_active=?")
		args = append(args, *upd.IsActive)
	}
	if upd.Gender != nil {
		sets = append(sets, "gender=?")
		args = append(args, *upd.Gender)
	}
	if upd.Age != nil {
		sets = append(sets, "age=?")
		args = append(args, *upd.Age)
	}
	if len(sets) > 0 {
		args = append(args, id)
		res, err := r.DB.ExecContext(ctx,
			"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
		if err != nil {
			return model.User{}, err
		}
		// RowsAffected is 0 both for a missing row and for a no-op update,
		// so existence is settled by the read-back below.
		_ = res
	}
	return r.GetByID(ctx, id)
}

// Delete removes a user row.  Refresh tokens and place likes cascade at
// the schema level.  The bool reports whether a row was deleted.
func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetProfilePicture returns the stored blob, nil when the user has no
// picture, or ErrUserNotFound when the user does not exist.
func (r *UserRepo) GetProfilePicture(ctx context.Context, id string) ([]byte, error) {
	var pic []byte
	err := r.DB.QueryRowContext(ctx,
		"SELECT profile_picture FROM users WHERE id=? LIMIT 1", id).Scan(&pic)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return pic, nil
}

// UpdateProfilePicture stores data as the user's picture.  The bool
// reports whether a matching user row existed.
func (r *UserRepo) UpdateProfilePicture(ctx context.Context, id string, data []byte) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET profile_picture=? WHERE id=?", data, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}
	// An identical re-upload affects zero rows; distinguish from a
	// missing user before reporting failure.
	var exists bool
	if err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE id=?)", id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// DeleteProfilePicture clears the picture column.  The bool reports
// whether a picture was actually stored (a user without one reads as not
// found to the caller).
func (r *UserRepo) DeleteProfilePicture(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET profile_picture=NULL WHERE id=? AND profile_picture IS NOT NULL", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
