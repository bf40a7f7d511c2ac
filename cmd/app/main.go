package main

import (
	"context"
	"os"

	"billing-tool/internal/adapters/cli"
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
	log := logger.WithComponent("cli")

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer pool.Close()

	store := core.NewInvoiceStore(pool)
	identity := core.NewIdentityService(pool)
	svc := app.NewAppService(store, identity, render.NewPDF())

	root := cli.NewRootCmd(svc)
	if err := root.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
