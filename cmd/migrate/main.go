package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/milangdev/moviefi-test-task/pkg/config"

	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	dir := flag.String("dir", "migrations", "directory holding the migration files")
	down := flag.Bool("down", false, "roll back instead of applying")
	limit := flag.Int("limit", 0, "max migrations to run, 0 means all")
	flag.Parse()

	if err := run(logger, *dir, *down, *limit); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, dir string, down bool, limit int) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	sslmode := "disable"
	if cfg.DB.EnableSSL {
		sslmode = "require"
	}
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DB.Host, strconv.Itoa(cfg.DB.Port), cfg.DB.User, cfg.DB.Pass, cfg.DB.Name, sslmode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	source := &migrate.FileMigrationSource{Dir: dir}
	direction := migrate.Up
	if down {
		direction = migrate.Down
	}

	applied, err := migrate.ExecMax(db, "postgres", source, direction, limit)
	if err != nil {
		return err
	}

	logger.Info("migrations applied", "count", applied, "down", down)
	return nil
}
