package cmd

import (
	"github.com/spf13/cobra"

	"github.com/donaldgifford/ebaynet/pkg/ebay"
)

func itemCmd() *cobra.Command {
	itemRoot := &cobra.Command{
		Use:   "item",
		Short: "Look up items",
		Long: "Look up eBay items through the Browse API by RESTful item id,\n" +
			"legacy listing id, or item group id.",
	}

	itemRoot.AddCommand(
		itemGetCmd(),
		itemLegacyCmd(),
		itemGroupCmd(),
	)

	return itemRoot
}

func itemGetCmd() *cobra.Command {
	var variation string

	cmd := &cobra.Command{
		Use:   "get <item-id>",
		Short: "Get an item by RESTful id",
		Example: `  # RESTful id
  ebaynet item get "v1|110550727543|0"

  # Build the id from a legacy id and variation
  ebaynet item get 110550727543 --variation 410076447412`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			id := args[0]
			if variation != "" {
				id = ebay.FormatItemID(id, variation)
			}

			item, err := ebay.NewItemService(newClient(cfg)).GetItem(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printItem(cmd, item)
		},
	}

	cmd.Flags().StringVar(&variation, "variation", "", "treat the argument as a legacy id and add this variation id")

	return cmd
}

func itemLegacyCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "legacy <legacy-id>",
		Short:   "Get an item by legacy listing id",
		Example: `  ebaynet item legacy 110550727543`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			item, err := ebay.NewItemService(newClient(cfg)).GetItemByLegacyID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printItem(cmd, item)
		},
	}
}

func itemGroupCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "group <item-group-id>",
		Short:   "Get all items of an item group",
		Example: `  ebaynet item group 351825690866`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			group, err := ebay.NewItemService(newClient(cfg)).GetItemsByItemGroup(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), group)
			}
			return printItemsTable(cmd.OutOrStdout(), group.Items)
		},
	}
}

func printItem(cmd *cobra.Command, item *ebay.Item) error {
	if jsonOutput() {
		return outputJSON(cmd.OutOrStdout(), item)
	}
	return printItemDetail(cmd.OutOrStdout(), item)
}
