// Binario de migraciones de esquema (goose sobre database/sql con pgx).
//
//	go run ./cmd/migrate -cmd up
//	go run ./cmd/migrate -cmd status
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/tu-usuario/stock-control/pkg/config"
	"github.com/tu-usuario/stock-control/pkg/logger"
)

const defaultDir = "migrations"

func main() {
	cmd := flag.String("cmd", "up", "comando: up|down|status|version")
	dir := flag.String("dir", defaultDir, "directorio de migraciones goose")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	db, err := sql.Open("pgx", cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("abrir conexión")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("ping a PostgreSQL")
	}

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal().Err(err).Msg("dialecto goose")
	}

	ctx := context.Background()
	log.Info().Str("cmd", *cmd).Str("dir", *dir).Msg("ejecutando migraciones")
	if err := goose.RunContext(ctx, *cmd, db, *dir); err != nil {
		log.Fatal().Err(err).Str("cmd", *cmd).Msg("goose")
	}
	log.Info().Msg("migraciones completadas")
}
