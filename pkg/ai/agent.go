package ai

import (
	"github.com/spf13/viper"

	"github.com/theailifestyle/mas-a2a/pkg/a2a"
	"github.com/theailifestyle/mas-a2a/pkg/tools"
)

/*
Agent bundles everything a service needs to run one agent: the published
card, the model and provider that back it, the system instruction, and
the tools the model may call.
*/
type Agent struct {
	Card        *a2a.AgentCard
	Model       string
	Provider    string
	Instruction string
	Tools       []tools.Tool
}

type AgentOption func(*Agent)

/*
NewAgentFromConfig builds an Agent from the agent.<key> section of the
active configuration.
*/
func NewAgentFromConfig(key string, options ...AgentOption) *Agent {
	agent := &Agent{
		Card:        a2a.NewAgentCardFromConfig(key),
		Model:       viper.GetString("agent." + key + ".model"),
		Provider:    viper.GetString("agent." + key + ".provider"),
		Instruction: viper.GetString("agent." + key + ".instruction"),
	}

	for _, option := range options {
		option(agent)
	}

	return agent
}

func WithTools(toolset ...tools.Tool) AgentOption {
	return func(agent *Agent) {
		agent.Tools = append(agent.Tools, toolset...)
	}
}

func WithInstruction(instruction string) AgentOption {
	return func(agent *Agent) {
		agent.Instruction = instruction
	}
}
