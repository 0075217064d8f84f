package repo

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"invoicely/m/domain"
)

// Users reads and writes user accounts. Accounts are provisioned
// out-of-band (cmd/createadmin or the boot seed) and never modified by
// the HTTP surface.
type Users struct{ db *sqlx.DB }

func NewUsers(db *sqlx.DB) *Users { return &Users{db: db} }

const userColumns = `id, username, email, password_hash, full_name, created_at`

// ByLogin finds a user by username or email.
func (r *Users) ByLogin(ctx context.Context, login string) (domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user,
		`SELECT `+userColumns+` FROM users WHERE username = $1 OR email = $2`,
		login, strings.ToLower(login))
	return user, err
}

// ByID loads a user by primary key.
func (r *Users) ByID(ctx context.Context, id int64) (domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return user, err
}

// Exists reports whether a username or email is already taken.
func (r *Users) Exists(ctx context.Context, username, email string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM users WHERE username = $1 OR email = $2`,
		username, strings.ToLower(email))
	return count > 0, err
}

// Create inserts a new account and returns its id.
func (r *Users) Create(ctx context.Context, username, email, passwordHash, fullName string) (int64, error) {
	var id int64
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO users (username, email, password_hash, full_name) VALUES ($1, $2, $3, $4) RETURNING id`,
		username, strings.ToLower(email), passwordHash, fullName).Scan(&id)
	return id, err
}
