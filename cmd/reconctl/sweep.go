package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/chainsafe/audit-register-recon/pkg/bizdate"
	"github.com/chainsafe/audit-register-recon/pkg/settlement"
	settlementservice "github.com/chainsafe/audit-register-recon/pkg/settlement/service"
	"github.com/chainsafe/audit-register-recon/pkg/settlementstore"
	"github.com/chainsafe/audit-register-recon/pkg/sweep"
)

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().StringP("date", "d", "", "Settlement date (YYYY-MM-DD), defaults to today")
	sweepCmd.Flags().IntP("window", "w", 0, "Number of days to sweep, defaults to sweep.window_days")
}

var sweepCmd = &cobra.Command{
	Use:   "sweep JOB",
	Short: "Run a settlement job backwards over a window of days",
	Long: `Run transactionTotal, udArReconciliation or deviceUsageMatch for every day of the window
ending at the settlement date, oldest day first. The redis lock is honoured
when lock.enabled is set, so a sweep never overlaps a server-triggered one.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: jobArgs(),
	RunE:      runSweep,
}

func runSweep(cmd *cobra.Command, args []string) error {
	dateFlag, _ := cmd.Flags().GetString("date")
	window, _ := cmd.Flags().GetInt("window")

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	settlementDate, err := settlement.ParseSettlementDate(dateFlag, bizdate.Today(time.Now(), e.cfg.Sweep.TimeLocation()))
	if err != nil {
		return err
	}
	if window <= 0 {
		window = e.cfg.Sweep.WindowDays
	}

	var locker sweep.Locker = sweep.NoopLocker{}
	if e.cfg.Lock.Enabled {
		rdb, err := sweep.NewRedisClient(cmd.Context(), &e.cfg.Lock)
		if err != nil {
			return err
		}
		defer rdb.Close()
		locker = sweep.NewRedisLocker(rdb, e.cfg.Lock.TTL)
	}

	svc := settlementservice.NewService(
		sweep.New(locker, e.logger),
		settlementservice.NewJobs(settlementstore.NewStore(e.db)),
		window,
	)

	outcome, err := svc.Trigger(cmd.Context(), settlement.JobName(args[0]), settlementDate)
	if outcome != nil {
		printOutcome(cmd, outcome)
	}
	return err
}

func printOutcome(cmd *cobra.Command, o *sweep.Outcome) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s sweep ending %s: %s\n", o.Job.Title(), bizdate.Format(o.SettlementDate), o.Status)
	for _, d := range o.Days {
		if d.Err != nil {
			fmt.Fprintf(out, "  %s  FAILED  %v\n", bizdate.Format(d.Date), d.Err)
			continue
		}
		fmt.Fprintf(out, "  %s  ok      %d row(s)\n", bizdate.Format(d.Date), d.Rows)
	}
	fmt.Fprintf(out, "succeeded: %d, failed: %d, rows written: %d\n", o.Succeeded, o.Failed, o.RowsWritten)
}
