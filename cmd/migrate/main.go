package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/novamart/storefront-backend/pkg/config"
	"github.com/novamart/storefront-backend/pkg/migrate"
)

// Usage: migrate [-dir pkg/migrate/migrations] <command> [args]
// Commands are goose commands: up, down, status, version, create, ...
func main() {
	_ = godotenv.Load()

	dir := flag.String("dir", migrate.DefaultDir, "directory with migration files")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: migrate [-dir path] <goose-command> [args]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("loading config", err)
	}
	if cfg.DB.IsSQLite() {
		fatal("unsupported driver", fmt.Errorf("SQL migrations target postgres; sqlite schemas auto-migrate on startup"))
	}

	db, err := sql.Open("pgx", cfg.DB.DSN)
	if err != nil {
		fatal("opening database", err)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		fatal("pinging database", err)
	}

	command := args[0]
	if err := migrate.Run(ctx, db, *dir, command, args[1:]...); err != nil {
		fatal("running migration", err)
	}
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}
