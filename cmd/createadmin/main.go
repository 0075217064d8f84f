// createadmin provisions a user account from the command line. There is
// no self-service registration; this is the out-of-band step that seeds
// credentials for the invoicing app.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"invoicely/m/internal/config"
	"invoicely/m/internal/database"
	"invoicely/m/internal/logger"
	"invoicely/m/internal/migrations"
	"invoicely/m/internal/repo"
)

var (
	email    string
	fullName string
)

var rootCmd = &cobra.Command{
	Use:   "createadmin <username> <password>",
	Short: "Create a user account for the invoicing app",
	Long: `Creates a user account directly in the database. The server has no
registration endpoint; accounts are provisioned with this command and
used to sign in to the web client.`,
	Args: cobra.ExactArgs(2),
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	username, password := args[0], args[1]

	if len(username) < 3 {
		return fmt.Errorf("username must be at least 3 characters long")
	}
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters long")
	}
	if email == "" {
		email = username + "@company.com"
	}
	if fullName == "" {
		fullName = "Administrator"
	}

	cfg := config.Load()
	db := database.Connect(cfg.DatabaseDSN)
	defer db.Close()
	migrations.Run(db)

	ctx := context.Background()
	users := repo.NewUsers(db)

	exists, err := users.Exists(ctx, username, email)
	if err != nil {
		return fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return fmt.Errorf("user %q already exists", username)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	id, err := users.Create(ctx, username, strings.ToLower(email), string(hashed), fullName)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Printf("User created\n")
	fmt.Printf("  id:        %d\n", id)
	fmt.Printf("  username:  %s\n", username)
	fmt.Printf("  email:     %s\n", strings.ToLower(email))
	fmt.Printf("  full name: %s\n", fullName)
	return nil
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	rootCmd.Flags().StringVar(&email, "email", "", "email address (default <username>@company.com)")
	rootCmd.Flags().StringVar(&fullName, "full-name", "", "display name (default Administrator)")
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
