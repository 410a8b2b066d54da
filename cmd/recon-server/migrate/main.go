package main

import (
	"context"
	"flag"
	"log"

	"github.com/chainsafe/audit-register-recon/pkg/config"
	"github.com/chainsafe/audit-register-recon/pkg/migrations/recondb"
	"github.com/chainsafe/audit-register-recon/pkg/pgutil"
	mghelper "github.com/chainsafe/audit-register-recon/pkg/pgutil/migrations"

	"github.com/uptrace/bun/migrate"
)

func main() {
	cfgPath := flag.String("config", "config.example.yaml", "Path to configuration file")
	flag.Usage = mghelper.Usage
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("error reading configuration file: %s", err.Error())
	}

	// Connect to database
	db, err := pgutil.ConnectDB(&cfg.Database)
	if err != nil {
		log.Fatalf("error connecting to database: %s", err.Error())
	}
	defer db.Close()

	log.Printf("Running migrations for reconciliation database (%s)...\n", cfg.Database.Database)

	migrator := migrate.NewMigrator(db, recondb.Migrations)

	if err := mghelper.RunMigrations(context.Background(), migrator, flag.Args()...); err != nil {
		mghelper.Exitf(err.Error())
	}
}
