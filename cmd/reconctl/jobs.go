package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/chainsafe/audit-register-recon/pkg/bizdate"
	"github.com/chainsafe/audit-register-recon/pkg/settlement"
	"github.com/chainsafe/audit-register-recon/pkg/settlementstore"
)

func init() {
	rootCmd.AddCommand(aggregateCmd)
	rootCmd.AddCommand(reconcileCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(reportCmd)

	for _, c := range []*cobra.Command{aggregateCmd, reconcileCmd, matchCmd, reportCmd} {
		c.Flags().StringP("date", "d", "", "Settlement date (YYYY-MM-DD), defaults to today")
	}
}

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Aggregate raw mirrored transactions of a single settlement date",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSingleDay(cmd, settlement.JobTransactionTotal)
	},
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Total mirrored audit registers of a single settlement date",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSingleDay(cmd, settlement.JobUdArReconciliation)
	},
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Compare device audit totals with mirrored usage for a single business date",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSingleDay(cmd, settlement.JobDeviceUsageMatch)
	},
}

var reportCmd = &cobra.Command{
	Use:       "report JOB",
	Short:     "Print the rows a job wrote for a settlement date",
	Args:      cobra.ExactArgs(1),
	ValidArgs: jobArgs(),
	RunE:      runReport,
}

func jobArgs() []string {
	args := make([]string, 0, len(settlement.Jobs))
	for _, j := range settlement.Jobs {
		args = append(args, string(j))
	}
	return args
}

func settlementDateFlag(cmd *cobra.Command, loc *time.Location) (time.Time, error) {
	dateFlag, _ := cmd.Flags().GetString("date")
	return settlement.ParseSettlementDate(dateFlag, bizdate.Today(time.Now(), loc))
}

func runSingleDay(cmd *cobra.Command, job settlement.JobName) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	settlementDate, err := settlementDateFlag(cmd, e.cfg.Sweep.TimeLocation())
	if err != nil {
		return err
	}

	store := settlementstore.NewStore(e.db)
	var rows int
	switch job {
	case settlement.JobTransactionTotal:
		rows, err = store.AggregateTransactionTotals(cmd.Context(), settlementDate)
	case settlement.JobDeviceUsageMatch:
		rows, err = store.MatchDeviceUsage(cmd.Context(), settlementDate)
	default:
		rows, err = store.ReconcileAuditRegisters(cmd.Context(), settlementDate)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s for %s: %d row(s) written\n", job.Title(), bizdate.Format(settlementDate), rows)
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	settlementDate, err := settlementDateFlag(cmd, e.cfg.Sweep.TimeLocation())
	if err != nil {
		return err
	}

	store := settlementstore.NewStore(e.db)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	defer w.Flush()

	switch settlement.JobName(args[0]) {
	case settlement.JobTransactionTotal:
		totals, err := store.ListTransactionTotals(cmd.Context(), settlementDate)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "DEVICE\tTXN TYPE\tSUBTYPE\tSETTLED\tSETTLED AMOUNT\tUNSETTLED\tUNSETTLED AMOUNT")
		for _, t := range totals {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%d\t%s\n",
				t.DeviceID, t.TxnType, t.TxnSubtype,
				t.SettledCount, t.SettledAmount.StringFixed(2),
				t.UnsettledCount, t.UnsettledAmount.StringFixed(2))
		}
	case settlement.JobUdArReconciliation:
		results, err := store.ListReconciliations(cmd.Context(), settlementDate)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "BE\tAR TYPE\tMEDIA\tTXNS\tCOUNT\tVALUE\tDEVICES\tSTATUS")
		for _, r := range results {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%s\t%d\t%s\n",
				r.BEID, r.ARTypeIdentifier, r.CardMediaTypeID,
				r.TransactionCount, r.TotalCount, r.TotalValue.StringFixed(2),
				r.DeviceCount, r.Status)
		}
	case settlement.JobDeviceUsageMatch:
		matches, err := store.ListDeviceUsageMatches(cmd.Context(), settlementDate)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "DEVICE\tBE\tAUDIT COUNT\tAUDIT VALUE\tUSAGE COUNT\tUSAGE VALUE\tSTATUS")
		for _, m := range matches {
			usageCount, usageValue := "-", "-"
			if m.UsageCount != nil {
				usageCount = fmt.Sprint(*m.UsageCount)
			}
			if m.UsageValue.Valid {
				usageValue = m.UsageValue.Decimal.StringFixed(2)
			}
			fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%s\t%s\n",
				m.DeviceID, m.BEID, m.AuditCount, m.AuditValue.StringFixed(2),
				usageCount, usageValue, m.Status)
		}
	default:
		return fmt.Errorf("unknown job %q", args[0])
	}
	return nil
}
