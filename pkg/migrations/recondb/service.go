// Package recondb holds all the migrations for the reconciliation database
package recondb

import (
	"github.com/uptrace/bun/migrate"
)

// Migrations is the collection of all migrations for the reconciliation database
var Migrations = migrate.NewMigrations()
