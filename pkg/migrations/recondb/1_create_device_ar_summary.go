package recondb

import (
	"context"
	"log"

	"github.com/chainsafe/audit-register-recon/pkg/auditstore"
	mghelper "github.com/chainsafe/audit-register-recon/pkg/pgutil/migrations"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating device_ar_summary table...")
		if err := mghelper.CreateSchema(ctx, db, &auditstore.DeviceSummaryDao{}); err != nil {
			return err
		}
		// MaxSeqNum looks rows up by key prefix
		return mghelper.CreateModelCompositeIndex(ctx, db, &auditstore.DeviceSummaryDao{}, "device_date", false,
			"device_id", "be_id", "business_date")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping device_ar_summary table...")
		return mghelper.DropTables(ctx, db, &auditstore.DeviceSummaryDao{})
	})
}
