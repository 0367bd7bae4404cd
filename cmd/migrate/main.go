// Команда migrate применяет, откатывает и чинит миграции схемы вопросов.
//
//	migrate -cmd up
//	migrate -cmd down -steps 1
//	migrate -cmd force -version 2
//	migrate -cmd version
package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/yourusername/trivia-questions/internal/config"
	"github.com/yourusername/trivia-questions/internal/logger"
)

func main() {
	var (
		configPath = flag.String("config", envOr("CONFIG_PATH", "config/config.yaml"), "путь к файлу конфигурации")
		command    = flag.String("cmd", "up", "up | down | force | version")
		steps      = flag.Int("steps", 0, "количество шагов для up/down (0 - все)")
		version    = flag.Int("version", -1, "версия для force")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Database.Driver != config.DriverPostgres {
		fmt.Fprintf(os.Stderr, "migrations require database.driver=%s, got %s\n", config.DriverPostgres, cfg.Database.Driver)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, *command, *steps, *version, log); err != nil {
		log.Fatal("Migration failed", zap.String("cmd", *command), zap.Error(err))
	}
}

func run(cfg *config.Config, command string, steps, version int, log *zap.Logger) error {
	db, err := sql.Open("postgres", cfg.Database.PostgresConnectionString())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migrate driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(cfg.Database.MigrationsPath, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	switch command {
	case "up":
		if steps > 0 {
			err = m.Steps(steps)
		} else {
			err = m.Up()
		}
	case "down":
		if steps > 0 {
			err = m.Steps(-steps)
		} else {
			err = m.Down()
		}
	case "force":
		if version < 0 {
			return errors.New("force requires -version")
		}
		// Снимает признак dirty после неудачной миграции
		err = m.Force(version)
	case "version":
	default:
		return fmt.Errorf("unknown command %q", command)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("No migrations to apply")
		err = nil
	}
	if err != nil {
		return err
	}

	current, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Info("Database has no applied migrations")
		return nil
	}
	if err != nil {
		return err
	}

	log.Info("Migration state", zap.Uint("version", current), zap.Bool("dirty", dirty))
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
