package catalog

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/theailifestyle/mas-a2a/pkg/a2a"
)

type Registry struct {
	agents *sync.Map
}

func NewRegistry() *Registry {
	return &Registry{
		agents: new(sync.Map),
	}
}

func (registry *Registry) AddAgent(card a2a.AgentCard) {
	log.Info("adding agent to catalog", "name", card.Name)
	registry.agents.Store(card.Name, card)
}

func (registry *Registry) GetAgent(name string) (a2a.AgentCard, bool) {
	value, ok := registry.agents.Load(name)

	if !ok {
		return a2a.AgentCard{}, false
	}

	return value.(a2a.AgentCard), true
}

func (registry *Registry) GetAgents() []a2a.AgentCard {
	agents := make([]a2a.AgentCard, 0)

	registry.agents.Range(func(key, value any) bool {
		agents = append(agents, value.(a2a.AgentCard))
		return true
	})

	return agents
}
