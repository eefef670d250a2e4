package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/arclight-labs/prospect-cli/internal/adapters/driven/auth"
	"github.com/arclight-labs/prospect-cli/internal/adapters/driven/message"
	"github.com/arclight-labs/prospect-cli/internal/adapters/driven/notify"
	"github.com/arclight-labs/prospect-cli/internal/adapters/driven/storage/csvfile"
	"github.com/arclight-labs/prospect-cli/internal/adapters/driven/storage/sqlite"
	"github.com/arclight-labs/prospect-cli/internal/adapters/driven/suppression"
	"github.com/arclight-labs/prospect-cli/internal/connectors/msgraph"
	"github.com/arclight-labs/prospect-cli/internal/core/services"
)

var (
	dispatchLeadFile   string
	dispatchDailyLimit int
	dispatchSendDelay  time.Duration
)

var dispatchCmd = &cobra.Command{
	Use:   "dispatch",
	Short: "Send outreach to collected leads under daily quotas",
	Long: `Runs the dispatch loop: loads the lead file, keeps deliverable
addresses not on the do-not-contact list, ranks them by seniority and
sends until the daily limit is reached. Every attempt is recorded in the
send ledger; a recipient is contacted at most once per day and at most
two people per company per day by default.`,
	RunE: runDispatch,
}

func init() {
	dispatchCmd.Flags().StringVar(&dispatchLeadFile, "leads", "", "lead CSV path (default from config)")
	dispatchCmd.Flags().IntVar(&dispatchDailyLimit, "daily-limit", 0, "max send attempts today (default from config)")
	dispatchCmd.Flags().DurationVar(&dispatchSendDelay, "send-delay", 0, "pause after each attempt (default from config)")
	rootCmd.AddCommand(dispatchCmd)
}

func runDispatch(cmd *cobra.Command, _ []string) error {
	if cfg.Graph.SenderUPN == "" {
		return errors.New("graph sender not configured (set SENDER_UPN or graph.sender_upn)")
	}

	leadFile := cfg.Collect.OutputPath
	if dispatchLeadFile != "" {
		leadFile = dispatchLeadFile
	}
	store, err := csvfile.NewLeadStore(leadFile)
	if err != nil {
		return err
	}

	ledgerStore, err := sqlite.NewStore(cfg.Ledger.DataDir)
	if err != nil {
		return err
	}
	defer ledgerStore.Close()

	tokens, err := auth.NewGraphTokenProvider(
		cfg.Graph.TenantID, cfg.Graph.ClientID, cfg.Graph.ClientSecret, cfg.Graph.TokenCachePath)
	if err != nil {
		return err
	}

	renderer, err := message.NewRenderer(
		cfg.Dispatch.SenderName, cfg.Dispatch.SenderTitle, cfg.Dispatch.BrandName, cfg.Dispatch.LogoPath)
	if err != nil {
		return err
	}

	doNotContact, err := suppression.Load(cfg.Dispatch.DoNotContactPath)
	if err != nil {
		return err
	}

	dailyLimit := cfg.Dispatch.DailyLimit
	if dispatchDailyLimit > 0 {
		dailyLimit = dispatchDailyLimit
	}
	sendDelay := time.Duration(cfg.Dispatch.SendDelaySeconds) * time.Second
	if dispatchSendDelay > 0 {
		sendDelay = dispatchSendDelay
	}

	dispatcher := services.NewDispatcher(
		store,
		ledgerStore.SendLedger(),
		renderer,
		msgraph.NewClient(cfg.Graph.SenderUPN, tokens),
		notify.NewTelegramNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID),
		services.DispatcherConfig{
			DailyLimit:          dailyLimit,
			MaxPerCompanyPerDay: cfg.Dispatch.MaxPerCompanyPerDay,
			SendDelay:           sendDelay,
			DoNotContact:        doNotContact,
		},
	)

	result, err := dispatcher.Run(cmd.Context())
	if result != nil {
		cmd.Printf("Run %s: %d sent, %d failed, %d skipped of %d eligible\n",
			result.RunID, result.Sent, result.Failed, result.SkippedQuota, result.Eligible)
		if result.QuotaReached {
			cmd.Println("Daily limit reached.")
		}
	}
	return err
}
