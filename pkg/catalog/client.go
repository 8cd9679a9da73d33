package catalog

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	fiberClient "github.com/gofiber/fiber/v3/client"

	"github.com/theailifestyle/mas-a2a/pkg/a2a"
)

/*
CatalogClient talks to a running catalog service.  Agents use it to
register their card on startup; clients use it for discovery.
*/
type CatalogClient struct {
	conn *fiberClient.Client
}

func NewCatalogClient(baseURL string) *CatalogClient {
	return &CatalogClient{
		conn: fiberClient.New().
			SetBaseURL(baseURL).
			SetTimeout(10 * time.Second),
	}
}

// Register publishes an agent card to the catalog.
func (client *CatalogClient) Register(card *a2a.AgentCard) error {
	res, err := client.conn.Post("/agent", fiberClient.Config{
		Header: map[string]string{"Content-Type": "application/json"},
		Body:   card,
	})

	if err != nil {
		return &ConnectionError{Message: "register", Err: err}
	}

	if res.StatusCode() != http.StatusCreated {
		return &RegistrationError{StatusCode: res.StatusCode(), Message: string(res.Body())}
	}

	log.Info("registered agent with catalog", "name", card.Name)
	return nil
}

// GetAgents retrieves all agent cards from the catalog.
func (client *CatalogClient) GetAgents() ([]a2a.AgentCard, error) {
	res, err := client.conn.Get("/.well-known/catalog.json")

	if err != nil {
		return nil, &ConnectionError{Message: "list agents", Err: err}
	}

	if res.StatusCode() != http.StatusOK {
		return nil, &ConnectionError{Message: string(res.Body())}
	}

	var agents []a2a.AgentCard

	if err := json.Unmarshal(res.Body(), &agents); err != nil {
		return nil, &DecodingError{Message: "catalog listing", Err: err}
	}

	return agents, nil
}

// GetAgent retrieves one agent card by name.
func (client *CatalogClient) GetAgent(name string) (*a2a.AgentCard, error) {
	res, err := client.conn.Get("/agent/" + name)

	if err != nil {
		return nil, &ConnectionError{Message: "get agent", Err: err}
	}

	if res.StatusCode() == http.StatusNotFound {
		return nil, &NotFoundError{AgentName: name}
	}

	if res.StatusCode() != http.StatusOK {
		return nil, &ConnectionError{Message: string(res.Body())}
	}

	var card a2a.AgentCard

	if err := json.Unmarshal(res.Body(), &card); err != nil {
		return nil, &DecodingError{Message: "agent card", Err: err}
	}

	return &card, nil
}
