package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/theailifestyle/mas-a2a/pkg/a2a"
	"github.com/theailifestyle/mas-a2a/pkg/delegate"
)

var (
	agentURLFlag string
	agentIDFlag  string

	clientCmd = &cobra.Command{
		Use:   "client",
		Short: "Client operations against running agents",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	sendCmd = &cobra.Command{
		Use:   "send [message]",
		Short: "Send a message to an agent and wait for the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := delegate.NewClient().Call(
				cmd.Context(), agentURLFlag, agentIDFlag, args[0],
			)

			fmt.Println(answerStyle.Render(out))
			return nil
		},
	}

	cardCmd = &cobra.Command{
		Use:   "card",
		Short: "Fetch an agent's published card",
		RunE: func(cmd *cobra.Command, args []string) error {
			card, err := a2a.NewClient(agentURLFlag).AgentCard()

			if err != nil {
				return err
			}

			fmt.Println(titleStyle.Render(card.Name + " (" + card.Version + ")"))

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

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	answerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func init() {
	rootCmd.AddCommand(clientCmd)
	clientCmd.AddCommand(sendCmd)
	clientCmd.AddCommand(cardCmd)

	clientCmd.PersistentFlags().StringVarP(&agentURLFlag, "url", "u", "http://localhost:10012", "Base URL of the agent")
	clientCmd.PersistentFlags().StringVarP(&agentIDFlag, "agent", "a", "orchestrator", "Logical agent identifier")
}
