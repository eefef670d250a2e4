package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/arclight-labs/prospect-cli/internal/adapters/driven/storage/csvfile"
	"github.com/arclight-labs/prospect-cli/internal/connectors/apollo"
	"github.com/arclight-labs/prospect-cli/internal/core/domain"
	"github.com/arclight-labs/prospect-cli/internal/core/services"
)

var (
	collectMode      string
	collectMaxPages  int
	collectOutput    string
	collectDryRun    bool
	collectPageDelay time.Duration
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Search, enrich and persist new leads",
	Long: `Runs the collection loop: paginates the people search for the chosen
recipe, drops excluded and already-seen candidates, enriches the rest in
batches and appends them to the lead file. Each batch is flushed before
the next starts, so an interrupted run keeps its progress.`,
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().StringVar(&collectMode, "mode", string(domain.RecipeHighIntent),
		fmt.Sprintf("filter recipe, one of %v", domain.RecipeModes()))
	collectCmd.Flags().IntVar(&collectMaxPages, "max-pages", 0, "maximum search pages to fetch (default from config)")
	collectCmd.Flags().StringVar(&collectOutput, "output", "", "lead CSV path (default from config)")
	collectCmd.Flags().BoolVar(&collectDryRun, "dry-run", false, "search and filter only, without enriching or saving")
	collectCmd.Flags().DurationVar(&collectPageDelay, "page-delay", 0, "pause between search pages (default from config)")
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, _ []string) error {
	if cfg.Apollo.APIKey == "" {
		return errors.New("apollo api key not configured (set APOLLO_API_KEY or apollo.api_key)")
	}

	recipe, err := domain.BuildRecipe(domain.RecipeMode(collectMode), time.Now())
	if err != nil {
		return err
	}

	output := cfg.Collect.OutputPath
	if collectOutput != "" {
		output = collectOutput
	}
	store, err := csvfile.NewLeadStore(output)
	if err != nil {
		return err
	}

	maxPages := cfg.Collect.MaxPages
	if collectMaxPages > 0 {
		maxPages = collectMaxPages
	}
	pageDelay := time.Duration(cfg.Collect.PageDelayMillis) * time.Millisecond
	if collectPageDelay > 0 {
		pageDelay = collectPageDelay
	}

	collector := services.NewCollector(
		apollo.NewClient(cfg.Apollo.APIKey),
		store,
		domain.DefaultExclusionRules(),
		services.CollectorConfig{
			MaxPages:  maxPages,
			PageDelay: pageDelay,
			DryRun:    collectDryRun,
		},
	)

	result, err := collector.Run(cmd.Context(), recipe)
	if result != nil {
		cmd.Printf("Collected %d leads from %d pages (%d raw, %d kept) into %s\n",
			result.Saved, result.Pages, result.Raw, result.Kept, store.Path())
	}
	return err
}
