package cmd

import (
	"github.com/spf13/cobra"

	"github.com/donaldgifford/ebaynet/pkg/ebay"
)

func searchCmd() *cobra.Command {
	var req ebay.SearchRequest

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search item summaries",
		Long: "Run a single Browse API item_summary search and print one page\n" +
			"of results. Further pages are not fetched; use --offset.",
		Example: `  # Newest listings first
  ebaynet search "dell r740" --sort newlyListed

  # Restrict to a category and price range
  ebaynet search "ddr4 ecc 32gb" --category 170083 --filter "price:[20..80],priceCurrency:USD"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			req.Query = args[0]
			resp, err := ebay.NewSearchService(newClient(cfg)).Search(cmd.Context(), req)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), resp)
			}
			return printSummaryTable(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().IntVar(&req.Limit, "limit", 50, "page size (max 200)")
	cmd.Flags().IntVar(&req.Offset, "offset", 0, "result offset")
	cmd.Flags().StringVar(&req.CategoryID, "category", "", "category id")
	cmd.Flags().StringVar(&req.Sort, "sort", "", "sort order, e.g. newlyListed")
	cmd.Flags().StringVar(&req.Filter, "filter", "", "Browse API filter expression")

	return cmd
}
