// Package migrations holds migrations related helpers
package migrations

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"reflect"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

const usageText = `Usage:
  go run cmd/recon-server/migrate/main.go <command> [args]

This program runs command on the reconciliation database. Supported commands are:
  - init - creates migration info table in the database
  - up - runs all available migrations.
  - down - reverts last migration group.
  - status - prints migration status.

Examples:
  go run cmd/recon-server/migrate/main.go -config config.yaml init
  go run cmd/recon-server/migrate/main.go -config config.yaml up
  reconctl migrate up --config config.yaml
`

// Usage prints command usage
func Usage() {
	fmt.Print(usageText)
	flag.PrintDefaults()
	os.Exit(2)
}

// Exitf exits command printing usage
func Exitf(s string, args ...any) {
	fmt.Fprintf(os.Stderr, s+"\n", args...)
	Usage()
}

// CreateSchema creates tables from models
func CreateSchema(ctx context.Context, db bun.IDB, models ...any) error {
	for _, model := range models {
		log.Println("Creating Table for", reflect.TypeOf(model))
		_, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}

// DropTables drops tables from database
func DropTables(ctx context.Context, db bun.IDB, models ...any) error {
	for _, model := range models {
		log.Println("Dropping Table for", reflect.TypeOf(model))
		_, err := db.NewDropTable().
			Model(model).
			IfExists().
			Cascade().
			Exec(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}

// InsertEntry inserts entries to the db
func InsertEntry(ctx context.Context, db bun.IDB, entries ...any) error {
	for _, entry := range entries {
		_, err := db.NewInsert().
			Model(entry).
			Exec(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}

// TruncateTables removes entries from tables
func TruncateTables(ctx context.Context, db bun.IDB, models ...any) error {
	for _, model := range models {
		_, err := db.NewDelete().
			Model(model).
			Where("1=1").
			Exec(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}

// CreateModelIndexes creates one single-column index per column on the table associated with the model.
// Index names are generated as idx_<table>_<column>.
func CreateModelIndexes(ctx context.Context, db bun.IDB, model any, columns ...string) error {
	for _, column := range columns {
		indexName, err := modelIndexName(db, model, column)
		if err != nil {
			return err
		}
		if _, err = db.NewCreateIndex().
			Model(model).
			Index(indexName).
			Column(column).
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// CreateModelCompositeIndex creates a single index spanning all columns, in order.
// The name suffix is appended to idx_<table>_.
func CreateModelCompositeIndex(ctx context.Context, db bun.IDB, model any, suffix string, unique bool, columns ...string) error {
	if len(columns) == 0 {
		return fmt.Errorf("composite index %s needs at least one column", suffix)
	}
	indexName, err := modelIndexName(db, model, suffix)
	if err != nil {
		return err
	}
	q := db.NewCreateIndex().
		Model(model).
		Index(indexName).
		Column(columns...).
		IfNotExists()
	if unique {
		q = q.Unique()
	}
	_, err = q.Exec(ctx)
	return err
}

// DropModelIndexes drops indexes created with CreateModelIndexes or CreateModelCompositeIndex.
func DropModelIndexes(ctx context.Context, db bun.IDB, model any, suffixes ...string) error {
	for _, suffix := range suffixes {
		indexName, err := modelIndexName(db, model, suffix)
		if err != nil {
			return err
		}
		if _, err = db.NewDropIndex().
			Model(model).
			Index(indexName).
			IfExists().
			Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

func modelIndexName(db bun.IDB, model any, suffix string) (string, error) {
	if model == nil {
		return "", fmt.Errorf("model cannot be nil")
	}
	tableName := db.NewCreateIndex().Model(model).GetTableName()
	if tableName == "" {
		return "", fmt.Errorf("failed to resolve table name for model %T", model)
	}

	indexTableName := strings.NewReplacer(`"`, "", ".", "_").Replace(tableName)
	return fmt.Sprintf("idx_%s_%s", indexTableName, suffix), nil
}

// RunMigrations runs migrations based on provided command arguments
func RunMigrations(ctx context.Context, migrator *migrate.Migrator, args ...string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command provided")
	}

	switch args[0] {
	case "init":
		if err := migrator.Init(ctx); err != nil {
			return err
		}
		log.Println("migration table created")
		return nil

	case "up":
		if err := migrator.Lock(ctx); err != nil {
			return fmt.Errorf("failed to acquire migration lock: %w", err)
		}
		defer unlock(ctx, migrator)

		group, err := migrator.Migrate(ctx)
		if err != nil {
			return err
		}
		if group.IsZero() {
			log.Println("no new migrations to run (database is up to date)")
		} else {
			log.Printf("migrated to %s\n", group)
		}
		return nil

	case "down":
		if err := migrator.Lock(ctx); err != nil {
			return fmt.Errorf("failed to acquire migration lock: %w", err)
		}
		defer unlock(ctx, migrator)

		group, err := migrator.Rollback(ctx)
		if err != nil {
			return err
		}
		if group.IsZero() {
			log.Println("no migrations to rollback")
		} else {
			log.Printf("rolled back %s\n", group)
		}
		return nil

	case "status":
		ms, err := migrator.MigrationsWithStatus(ctx)
		if err != nil {
			return err
		}
		log.Printf("migrations: %s\n", ms)
		log.Printf("unapplied migrations: %s\n", ms.Unapplied())
		log.Printf("last migration group: %s\n", ms.LastGroup())
		return nil

	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func unlock(ctx context.Context, migrator *migrate.Migrator) {
	if err := migrator.Unlock(ctx); err != nil {
		log.Printf("failed to release migration lock: %v", err)
	}
}
