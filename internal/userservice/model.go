package userservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sushihentaime/recipehub/internal/common"
)

var (
	ErrDuplicateEmail = errors.New("a user with this email address already exists")
)

func newUserModel(db *sql.DB) *UserModel {
	return &UserModel{db: db}
}

func (m *UserModel) insert(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (name, email, password)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at, version`

	args := []any{
		u.Name,
		u.Email,
		u.Password.hash,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt, &u.Version)
	if err != nil {
		switch {
		case common.UniqueViolation(err, "users_email_key"):
			return ErrDuplicateEmail
		default:
			return err
		}
	}

	return nil
}

func (m *UserModel) getByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, name, COALESCE(username, ''), email, password, bio, avatar, created_at, updated_at, version
		FROM users
		WHERE email = $1`

	return m.scanOne(m.db.QueryRowContext(ctx, query, email))
}

func (m *UserModel) getByID(ctx context.Context, id int) (*User, error) {
	query := `
		SELECT id, name, COALESCE(username, ''), email, password, bio, avatar, created_at, updated_at, version
		FROM users
		WHERE id = $1`

	return m.scanOne(m.db.QueryRowContext(ctx, query, id))
}

func (m *UserModel) scanOne(row *sql.Row) (*User, error) {
	var u User

	err := row.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Password.hash, &u.Bio, &u.Avatar, &u.CreatedAt, &u.UpdatedAt, &u.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

// update writes the mutable profile fields, guarded by the version the caller read.
func (m *UserModel) update(ctx context.Context, u *User) error {
	query := `
		UPDATE users
		SET name = $1, username = NULLIF($2, ''), bio = $3, avatar = $4, updated_at = NOW(), version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING updated_at, version`

	args := []any{
		u.Name,
		u.Username,
		u.Bio,
		u.Avatar,
		u.ID,
		u.Version,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&u.UpdatedAt, &u.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return common.ErrEditConflict
		default:
			return err
		}
	}

	return nil
}

func (m *UserModel) stats(ctx context.Context, id int) (Stats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM videos WHERE author_id = $1),
			(SELECT COUNT(*) FROM blogs WHERE author_id = $1)`

	var s Stats
	err := m.db.QueryRowContext(ctx, query, id).Scan(&s.Videos, &s.Blogs)
	if err != nil {
		return Stats{}, err
	}

	return s, nil
}
