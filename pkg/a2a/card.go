package a2a

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// AgentCapabilities describes the capabilities of an agent.
type AgentCapabilities struct {
	Streaming              bool `json:"streaming,omitempty"`
	PushNotifications      bool `json:"pushNotifications,omitempty"`
	StateTransitionHistory bool `json:"stateTransitionHistory,omitempty"`
}

// AgentProvider represents the organization behind an agent.
type AgentProvider struct {
	Organization string  `json:"organization"`
	URL          *string `json:"url,omitempty"`
}

// AgentSkill defines a specific capability offered by an agent.
type AgentSkill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Examples    []string `json:"examples,omitempty"`
	InputModes  []string `json:"inputModes,omitempty"`
	OutputModes []string `json:"outputModes,omitempty"`
}

// AgentCard is the metadata card published at /.well-known/agent.json.
type AgentCard struct {
	Name               string            `json:"name"`
	Description        *string           `json:"description,omitempty"`
	URL                string            `json:"url"`
	Provider           *AgentProvider    `json:"provider,omitempty"`
	Version            string            `json:"version"`
	Capabilities       AgentCapabilities `json:"capabilities"`
	DefaultInputModes  []string          `json:"defaultInputModes,omitempty"`
	DefaultOutputModes []string          `json:"defaultOutputModes,omitempty"`
	Skills             []AgentSkill      `json:"skills"`
}

/*
NewAgentCardFromConfig builds an agent card from the viper configuration
under agent.<key>.
*/
func NewAgentCardFromConfig(key string) *AgentCard {
	log.Debug("new agent card from config", "key", key)

	v := viper.GetViper()
	prefix := fmt.Sprintf("agent.%s", key)

	description := v.GetString(prefix + ".description")

	skillKeys := v.GetStringSlice(prefix + ".skills")
	skills := make([]AgentSkill, 0, len(skillKeys))

	for _, skillKey := range skillKeys {
		skills = append(skills, NewSkillFromConfig(skillKey))
	}

	return &AgentCard{
		Name:               v.GetString(prefix + ".name"),
		Description:        &description,
		URL:                v.GetString(prefix + ".url"),
		Version:            v.GetString(prefix + ".version"),
		DefaultInputModes:  []string{"text"},
		DefaultOutputModes: []string{"text"},
		Capabilities: AgentCapabilities{
			Streaming: false,
		},
		Skills: skills,
	}
}

// NewSkillFromConfig builds a skill from the viper configuration under
// skill.<key>.
func NewSkillFromConfig(key string) AgentSkill {
	v := viper.GetViper()
	prefix := fmt.Sprintf("skill.%s", key)

	description := v.GetString(prefix + ".description")

	return AgentSkill{
		ID:          key,
		Name:        v.GetString(prefix + ".name"),
		Description: &description,
		Tags:        v.GetStringSlice(prefix + ".tags"),
		Examples:    v.GetStringSlice(prefix + ".examples"),
	}
}
