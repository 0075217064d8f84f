package seed

import (
	"context"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"invoicely/m/internal/logger"
	"invoicely/m/internal/repo"
)

// EnsureAdmin provisions the initial account from the environment when
// ADMIN_USERNAME/ADMIN_PASSWORD are set. Accounts are otherwise created
// out-of-band with cmd/createadmin; existing usernames are left alone.
func EnsureAdmin(db *sqlx.DB, username, password string) {
	log := logger.WithComponent("seed")
	if username == "" || password == "" {
		return
	}

	ctx := context.Background()
	users := repo.NewUsers(db)

	exists, err := users.Exists(ctx, username, username+"@company.com")
	if err != nil {
		log.Error().Err(err).Msg("unable to check for existing admin")
		return
	}
	if exists {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("unable to hash admin password")
		return
	}

	id, err := users.Create(ctx, username, username+"@company.com", string(hashed), "Administrator")
	if err != nil {
		log.Error().Err(err).Msg("unable to create admin user")
		return
	}
	log.Info().Int64("user_id", id).Str("username", username).Msg("seeded admin user")
}
