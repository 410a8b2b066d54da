package recondb

import (
	"context"
	"log"

	mghelper "github.com/chainsafe/audit-register-recon/pkg/pgutil/migrations"
	"github.com/chainsafe/audit-register-recon/pkg/settlementstore"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating transaction_total table...")
		if err := mghelper.CreateSchema(ctx, db, &settlementstore.TransactionTotalDao{}); err != nil {
			return err
		}
		return mghelper.CreateModelIndexes(ctx, db, &settlementstore.TransactionTotalDao{}, "settlement_date")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping transaction_total table...")
		return mghelper.DropTables(ctx, db, &settlementstore.TransactionTotalDao{})
	})
}
