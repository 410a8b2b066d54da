// Command reconctl runs settlement jobs and database migrations from the shell.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/chainsafe/audit-register-recon/pkg/config"
	"github.com/chainsafe/audit-register-recon/pkg/pgutil"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "reconctl",
	Short: "Operate the audit register reconciliation service",
	Long: `reconctl runs the settlement jobs of the audit register reconciliation
service outside the HTTP server: backward sweeps, single-day aggregation and
reconciliation runs, result listings and database migrations.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to configuration file")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// env is what every database-backed command needs
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *bun.DB
}

func openEnv() (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	db, err := pgutil.ConnectDB(&cfg.Database)
	if err != nil {
		return nil, err
	}

	return &env{cfg: cfg, logger: logger, db: db}, nil
}

func (e *env) Close() {
	_ = e.db.Close()
	_ = e.logger.Sync()
}
