package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/waiyanphyo/shopdesk-backend/pkg/config"
	"github.com/waiyanphyo/shopdesk-backend/pkg/migrate"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	_ = godotenv.Load()

	command := "up"
	if len(args) > 0 {
		command = args[0]
		args = args[1:]
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	conn, err := sql.Open("postgres", cfg.DB.DSN)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}

	dir := os.Getenv("SHOPDESK_MIGRATIONS_DIR")
	if dir == "" {
		dir = migrate.DefaultDir
	}

	return migrate.Run(ctx, conn, dir, command, args...)
}
