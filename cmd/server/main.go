package main

import (
	"context"
	"net/http"
	"os"

	webAdapter "billing-tool/internal/adapters/web"
	"billing-tool/internal/app"
	"billing-tool/internal/core"
	"billing-tool/internal/db"
	"billing-tool/internal/logger"
	"billing-tool/internal/render"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	logger.Setup()
	log := logger.WithComponent("server")

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer pool.Close()

	store := core.NewInvoiceStore(pool)
	identity := core.NewIdentityService(pool)
	svc := app.NewAppService(store, identity, render.NewPDF())

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal().Msg("JWT_SECRET is not set")
	}

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins, jwtSecret)

	log.Info().Str("port", port).Msg("server starting")
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
