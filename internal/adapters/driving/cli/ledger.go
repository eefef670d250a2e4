package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/arclight-labs/prospect-cli/internal/adapters/driven/storage/sqlite"
	"github.com/arclight-labs/prospect-cli/internal/core/domain"
)

var ledgerDay string

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Show the send ledger for a day",
	Long: `Prints the send attempts recorded for a day (today by default),
with totals per outcome and per company.`,
	RunE: runLedger,
}

func init() {
	ledgerCmd.Flags().StringVar(&ledgerDay, "day", "", "day to inspect, YYYY-MM-DD (default today)")
	rootCmd.AddCommand(ledgerCmd)
}

func runLedger(cmd *cobra.Command, _ []string) error {
	day := ledgerDay
	if day == "" {
		day = domain.DayKey(time.Now())
	} else if _, err := time.Parse("2006-01-02", day); err != nil {
		return err
	}

	store, err := sqlite.NewStore(cfg.Ledger.DataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.SendLedger().EntriesOn(cmd.Context(), day)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		cmd.Printf("No send attempts on %s\n", day)
		return nil
	}

	sent := 0
	perCompany := map[string]int{}
	for _, entry := range entries {
		if entry.Sent() {
			sent++
		}
		perCompany[entry.Company]++
		cmd.Printf("%s  %-40s %-25s %s\n",
			entry.SentAt.Format("15:04:05"), entry.Email, entry.Company, entry.Status)
	}

	cmd.Printf("\n%s: %d attempts, %d sent, %d failed\n", day, len(entries), sent, len(entries)-sent)
	for company, count := range perCompany {
		cmd.Printf("  %-25s %d\n", company, count)
	}
	return nil
}
