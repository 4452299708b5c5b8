package main

import (
	"embed"

	"github.com/ghuser/orderflow/pkg/config"
	"github.com/ghuser/orderflow/pkg/migrator"
)

//go:embed *.sql
var MigrationsFS embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := migrator.RunMigrations(cfg.OrdersDatabaseURL, MigrationsFS); err != nil {
		panic(err)
	}
}
