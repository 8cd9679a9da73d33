package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/theailifestyle/mas-a2a/pkg/catalog"
)

var (
	catalogURLFlag string

	catalogCmd = &cobra.Command{
		Use:   "catalog",
		Short: "Query the agent discovery catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	catalogListCmd = &cobra.Command{
		Use:   "list",
		Short: "List the agents registered with the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := catalogClient().GetAgents()

			if err != nil {
				return err
			}

			if len(cards) == 0 {
				fmt.Println("no agents registered")
				return nil
			}

			for _, card := range cards {
				fmt.Println(titleStyle.Render(card.Name) + " " + card.URL)

				if card.Description != nil {
					fmt.Println("  " + *card.Description)
				}
			}

			return nil
		},
	}

	catalogGetCmd = &cobra.Command{
		Use:   "get [name]",
		Short: "Show one registered agent's card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			card, err := catalogClient().GetAgent(args[0])

			if err != nil {
				return err
			}

			fmt.Println(titleStyle.Render(card.Name+" ("+card.Version+")") + " " + card.URL)

			if card.Description != nil {
				fmt.Println(*card.Description)
			}

			for _, skill := range card.Skills {
				fmt.Println("  - " + skill.Name)
			}

			return nil
		},
	}
)

func catalogClient() *catalog.CatalogClient {
	url := catalogURLFlag

	if url == "" {
		url = viper.GetString("catalog.url")
	}

	return catalog.NewCatalogClient(url)
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogGetCmd)

	catalogCmd.PersistentFlags().StringVarP(&catalogURLFlag, "url", "u", "", "Base URL of the catalog (defaults to catalog.url from config)")
}
