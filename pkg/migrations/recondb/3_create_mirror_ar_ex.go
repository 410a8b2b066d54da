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
		log.Println("creating mirror_ar_ex and mirror_ar_detail_ex tables...")
		return mghelper.CreateSchema(ctx, db, &auditstore.MirrorArExDao{}, &auditstore.MirrorArDetailExDao{})
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping mirror_ar_ex and mirror_ar_detail_ex tables...")
		return mghelper.DropTables(ctx, db, &auditstore.MirrorArDetailExDao{}, &auditstore.MirrorArExDao{})
	})
}
