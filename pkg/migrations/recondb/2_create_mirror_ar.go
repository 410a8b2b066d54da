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
		log.Println("creating mirror_ar and mirror_ar_detail tables...")
		if err := mghelper.CreateSchema(ctx, db, &auditstore.MirrorArDao{}, &auditstore.MirrorArDetailDao{}); err != nil {
			return err
		}
		return mghelper.CreateModelIndexes(ctx, db, &auditstore.MirrorArDao{}, "business_date", "device_id")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping mirror_ar and mirror_ar_detail tables...")
		return mghelper.DropTables(ctx, db, &auditstore.MirrorArDetailDao{}, &auditstore.MirrorArDao{})
	})
}
