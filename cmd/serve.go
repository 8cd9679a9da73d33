package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/theailifestyle/mas-a2a/pkg/agents"
	"github.com/theailifestyle/mas-a2a/pkg/ai"
	"github.com/theailifestyle/mas-a2a/pkg/catalog"
	"github.com/theailifestyle/mas-a2a/pkg/provider"
	"github.com/theailifestyle/mas-a2a/pkg/service"
	"github.com/theailifestyle/mas-a2a/pkg/stores"
	"github.com/theailifestyle/mas-a2a/pkg/stores/s3"
)

var (
	portFlag int
	hostFlag string

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run agent and catalog services",
		Long:  longServe,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	serveAgentCmd = &cobra.Command{
		Use:       "agent [name]",
		Short:     "Serve one of the configured agents",
		Args:      cobra.ExactArgs(1),
		ValidArgs: agents.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			agent, err := agents.New(args[0])

			if err != nil {
				return fmt.Errorf("%w (known agents: %s)", err, strings.Join(agents.Names(), ", "))
			}

			prvdr, err := provider.New(cmd.Context(), agent.Provider)

			if err != nil {
				return err
			}

			taskStore, err := newTaskStore(cmd)

			if err != nil {
				return err
			}

			manager, err := ai.NewTaskManager(
				agent,
				ai.WithTaskStore(taskStore),
				ai.WithProvider(prvdr),
			)

			if err != nil {
				return err
			}

			registerWithCatalog(agent)

			return service.NewAgentServer(agent, manager).Listen(
				fmt.Sprintf("%s:%d", hostFlag, portFlag),
			)
		},
	}

	serveCatalogCmd = &cobra.Command{
		Use:   "catalog",
		Short: "Serve the agent discovery catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return service.NewCatalogServer().Listen(
				fmt.Sprintf("%s:%d", hostFlag, portFlag),
			)
		},
	}
)

func newTaskStore(cmd *cobra.Command) (stores.TaskStore, error) {
	switch viper.GetString("store.type") {
	case "s3":
		conn, err := s3.NewConn(cmd.Context())

		if err != nil {
			return nil, err
		}

		return s3.NewStore(conn), nil
	default:
		return stores.NewInMemoryTaskStore(), nil
	}
}

// registerWithCatalog is best effort: a missing catalog only disables
// discovery, the agent itself still serves.
func registerWithCatalog(agent *ai.Agent) {
	catalogURL := viper.GetString("catalog.url")

	if catalogURL == "" {
		return
	}

	go func() {
		if err := catalog.NewCatalogClient(catalogURL).Register(agent.Card); err != nil {
			log.Warn("could not register with catalog", "url", catalogURL, "error", err)
		}
	}()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.AddCommand(serveAgentCmd)
	serveCmd.AddCommand(serveCatalogCmd)

	serveCmd.PersistentFlags().IntVarP(&portFlag, "port", "p", 3210, "Port to serve on")
	serveCmd.PersistentFlags().StringVarP(&hostFlag, "host", "H", "0.0.0.0", "Host address to bind to")
}

var longServe = `
Serve an agent or the discovery catalog.

Examples:
  # Serve the Spanish translator on port 10010
  mas-a2a serve agent translator_es --port 10010

  # Serve the orchestrator
  mas-a2a serve agent orchestrator --port 10012

  # Serve the catalog
  mas-a2a serve catalog --port 3210
`
