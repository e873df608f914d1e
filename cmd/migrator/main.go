package main

import (
	"flag"
	"os"

	"auction-market/internal/repository"
	"auction-market/utils"
)

func main() {
	var dsn, table string

	flag.StringVar(&dsn, "dsn", os.Getenv("AUCTION_POSTGRES_DSN"), "postgres connection string")
	flag.StringVar(&table, "migrations-table", "schema_migrations", "name of migrations table")
	flag.Parse()

	if dsn == "" {
		utils.Fatal("dsn is required", nil)
	}

	applied, err := repository.Migrate(dsn, table)
	if err != nil {
		utils.Fatal("migration failed", map[string]any{"error": err.Error()})
	}
	if !applied {
		utils.Info("no migrations to apply", nil)
		return
	}
	utils.Info("migrations applied", map[string]any{"table": table})
}
