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
		log.Println("creating mirror_raw_txn table...")
		if err := mghelper.CreateSchema(ctx, db, &settlementstore.MirrorRawTxnDao{}); err != nil {
			return err
		}
		return mghelper.CreateModelIndexes(ctx, db, &settlementstore.MirrorRawTxnDao{}, "settlement_date")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping mirror_raw_txn table...")
		return mghelper.DropTables(ctx, db, &settlementstore.MirrorRawTxnDao{})
	})
}
