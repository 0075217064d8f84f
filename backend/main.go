package main

import (
	"net/http"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"invoicely/m/internal/api"
	"invoicely/m/internal/config"
	"invoicely/m/internal/database"
	"invoicely/m/internal/logger"
	"invoicely/m/internal/migrations"
	"invoicely/m/internal/seed"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	db := database.Connect(cfg.DatabaseDSN)
	defer db.Close()

	migrations.Run(db)
	seed.EnsureAdmin(db, cfg.AdminUsername, cfg.AdminPassword)

	handler := api.New(db, cfg.Secret, cfg.AllowedOrigins)

	log.Info().Str("port", cfg.HTTPPort).Msg("invoicely server starting")
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
