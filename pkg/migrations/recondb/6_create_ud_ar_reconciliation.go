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
		log.Println("creating ud_ar_reconciliation table...")
		if err := mghelper.CreateSchema(ctx, db, &settlementstore.UdArReconciliationDao{}); err != nil {
			return err
		}
		return mghelper.CreateModelIndexes(ctx, db, &settlementstore.UdArReconciliationDao{}, "settlement_date")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping ud_ar_reconciliation table...")
		return mghelper.DropTables(ctx, db, &settlementstore.UdArReconciliationDao{})
	})
}
