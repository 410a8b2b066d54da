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
		log.Println("creating device_usage_match table...")
		if err := mghelper.CreateSchema(ctx, db, &settlementstore.DeviceUsageMatchDao{}); err != nil {
			return err
		}
		if err := mghelper.CreateModelIndexes(ctx, db, &settlementstore.DeviceUsageMatchDao{}, "business_date"); err != nil {
			return err
		}
		// usage totals are read by business date, not settlement date
		return mghelper.CreateModelIndexes(ctx, db, &settlementstore.MirrorRawTxnDao{}, "be_business_date")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping device_usage_match table...")
		if _, err := db.ExecContext(ctx, "DROP INDEX IF EXISTS idx_mirror_raw_txn_be_business_date"); err != nil {
			return err
		}
		return mghelper.DropTables(ctx, db, &settlementstore.DeviceUsageMatchDao{})
	})
}
