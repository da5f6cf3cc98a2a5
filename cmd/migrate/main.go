package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/taimeline/taimeline-service/internal/config"
	"github.com/taimeline/taimeline-service/migrations"
)

func main() {
	var (
		configPath = flag.String("config", "config.toml", "path to config file")
		down       = flag.Bool("down", false, "roll back all migrations")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		fmt.Printf("Failed to load embedded migrations: %v\n", err)
		os.Exit(1)
	}

	databaseURL := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Database.User, cfg.Database.Password,
		cfg.Database.Host, cfg.Database.Port,
		cfg.Database.DBName, cfg.Database.SSLMode)

	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		fmt.Printf("Failed to initialize migrator: %v\n", err)
		os.Exit(1)
	}
	defer m.Close()

	if *down {
		err = m.Down()
	} else {
		err = m.Up()
	}

	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("No migrations to apply")
			return
		}
		fmt.Printf("Migration failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Migrations applied successfully")
}
