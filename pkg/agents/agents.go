package agents

import (
	"fmt"

	"github.com/theailifestyle/mas-a2a/pkg/ai"
	"github.com/theailifestyle/mas-a2a/pkg/delegate"
	"github.com/theailifestyle/mas-a2a/pkg/tools"
)

/*
Search wraps a web search tool behind the A2A surface.  The model decides
when to search and summarizes what comes back.
*/
func Search() *ai.Agent {
	return ai.NewAgentFromConfig("search", ai.WithTools(tools.NewWebSearch().Tool()))
}

// Spanish is a plain translation agent, no tools.
func Spanish() *ai.Agent {
	return ai.NewAgentFromConfig("translator_es")
}

// French is a plain translation agent, no tools.
func French() *ai.Agent {
	return ai.NewAgentFromConfig("translator_fr")
}

/*
Interpreter runs model-written Python inside a sandboxed container and
reports the output.
*/
func Interpreter() *ai.Agent {
	return ai.NewAgentFromConfig("interpreter", ai.WithTools(tools.NewCodeExecutor().Tool()))
}

/*
Orchestrator routes user requests to the other agents.  Its tools are the
delegation legs; choosing between them is left to the model.
*/
func Orchestrator() *ai.Agent {
	set := delegate.NewToolset(delegate.NewClient(), delegate.TargetsFromConfig())
	return ai.NewAgentFromConfig("orchestrator", ai.WithTools(set.Tools()...))
}

var constructors = map[string]func() *ai.Agent{
	"search":        Search,
	"translator_es": Spanish,
	"translator_fr": French,
	"interpreter":   Interpreter,
	"orchestrator":  Orchestrator,
}

// New builds the named agent, or errors if the name is unknown.
func New(name string) (*ai.Agent, error) {
	constructor, ok := constructors[name]

	if !ok {
		return nil, fmt.Errorf("unknown agent: %s", name)
	}

	return constructor(), nil
}

// Names lists the agents this binary can serve.
func Names() []string {
	return []string{"search", "translator_es", "translator_fr", "interpreter", "orchestrator"}
}
