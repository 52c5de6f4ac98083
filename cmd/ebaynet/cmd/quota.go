package cmd

import (
	"github.com/spf13/cobra"

	"github.com/donaldgifford/ebaynet/pkg/ebay"
)

func quotaCmd() *cobra.Command {
	var (
		apiContext string
		apiName    string
		resource   string
	)

	cmd := &cobra.Command{
		Use:   "quota",
		Short: "Show API rate limits",
		Long: "Report call limits and remaining quota from the Developer\n" +
			"Analytics API. With --resource only that resource is shown.",
		Example: `  # All Browse API resources
  ebaynet quota

  # Just the buy.browse quota
  ebaynet quota --resource buy.browse`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			limits, err := ebay.NewAnalyticsService(newClient(cfg)).
				GetRateLimits(cmd.Context(), apiContext, apiName)
			if err != nil {
				return err
			}

			if resource == "" {
				if jsonOutput() {
					return outputJSON(cmd.OutOrStdout(), limits)
				}
				return printRateLimitsTable(cmd.OutOrStdout(), limits)
			}

			state, err := ebay.QuotaFor(limits, resource)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), state)
			}
			return printQuotaState(cmd.OutOrStdout(), state)
		},
	}

	cmd.Flags().StringVar(&apiContext, "context", "buy", "API context")
	cmd.Flags().StringVar(&apiName, "api", "browse", "API name")
	cmd.Flags().StringVar(&resource, "resource", "", "only show this resource, e.g. "+ebay.BrowseResourceName)

	return cmd
}
