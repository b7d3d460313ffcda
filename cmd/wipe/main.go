// wipe borra todos los usuarios y registros del libro salvo el administrador configurado.
//
// Uso: go run ./cmd/wipe "BORRAR TODO"
// Sin la frase exacta no toca nada. Lee la misma configuración que la API (DATABASE_URL, LEDGER_ADMIN_ID...).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/puantaj-api/internal/application/usecase"
	"github.com/jhoicas/puantaj-api/internal/domain/ledger"
	"github.com/jhoicas/puantaj-api/internal/infrastructure/postgres"
	"github.com/jhoicas/puantaj-api/pkg/config"
	"github.com/jhoicas/puantaj-api/pkg/logger"
)

const confirmPhrase = "BORRAR TODO"

func main() {
	if len(os.Args) < 2 || os.Args[1] != confirmPhrase {
		fmt.Fprintf(os.Stderr, "Uso: wipe %q\n", confirmPhrase)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("wipe")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	store := ledger.NewStore()
	syncUC := usecase.NewSyncUseCase(postgres.NewGateway(pool, log), store, usecase.AdminSeed{
		ID:     cfg.Ledger.AdminID,
		Name:   cfg.Ledger.AdminName,
		Avatar: cfg.Ledger.AdminAvatar,
	}, log)
	if _, err := syncUC.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("carga del libro")
	}
	before := len(store.Users())

	if err := syncUC.WipeAll(ctx); err != nil {
		log.Fatal().Err(err).Msg("borrado total")
	}
	fmt.Printf("Borrado completo: %d usuarios eliminados, se conserva %s\n", before-len(store.Users()), cfg.Ledger.AdminID)
}
