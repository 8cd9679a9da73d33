package delegate

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/viper"

	"github.com/theailifestyle/mas-a2a/pkg/tools"
)

// Target is one delegation endpoint.
type Target struct {
	URL     string
	AgentID string
}

/*
Targets holds the delegation endpoints the orchestrator can reach.  They
are injected at construction time so tests can point them at stubs.
*/
type Targets struct {
	Spanish Target
	French  Target
	Search  Target
}

// TargetsFromConfig reads the delegate.targets section of the active
// configuration.
func TargetsFromConfig() Targets {
	target := func(key string) Target {
		return Target{
			URL:     viper.GetString("delegate.targets." + key + ".url"),
			AgentID: viper.GetString("delegate.targets." + key + ".agentId"),
		}
	}

	return Targets{
		Spanish: target("spanish"),
		French:  target("french"),
		Search:  target("search"),
	}
}

/*
Toolset exposes the delegation targets as tools the orchestrator's LLM
can call.  Which tool to invoke for a given user request is the LLM's
decision; the toolset only supplies the deterministic delegation legs.
*/
type Toolset struct {
	client  *Client
	targets Targets
}

func NewToolset(client *Client, targets Targets) *Toolset {
	return &Toolset{
		client:  client,
		targets: targets,
	}
}

func (set *Toolset) TranslateToSpanish(ctx context.Context, text string) string {
	return set.client.Call(ctx, set.targets.Spanish.URL, set.targets.Spanish.AgentID, text)
}

func (set *Toolset) TranslateToFrench(ctx context.Context, text string) string {
	return set.client.Call(ctx, set.targets.French.URL, set.targets.French.AgentID, text)
}

/*
SearchAndTranslateNews chains two delegations: search first, then feed
the wrapped result to the requested translator.  The second leg only
starts once the first has returned, so the calls never overlap.
*/
func (set *Toolset) SearchAndTranslateNews(
	ctx context.Context, searchQuery string, targetLanguage string,
) string {
	results := set.client.Call(
		ctx, set.targets.Search.URL, set.targets.Search.AgentID, searchQuery,
	)

	if strings.HasPrefix(results, "Error") ||
		strings.HasPrefix(results, "Unexpected") ||
		strings.HasPrefix(results, "Exception") ||
		strings.HasPrefix(results, "Failed") {
		return "Failed to get news: " + results
	}

	textToTranslate := fmt.Sprintf("News results for '%s': %s", searchQuery, results)

	switch strings.ToLower(targetLanguage) {
	case "spanish":
		return set.TranslateToSpanish(ctx, textToTranslate)
	case "french":
		return set.TranslateToFrench(ctx, textToTranslate)
	default:
		return fmt.Sprintf(
			"Unsupported translation language: %s. Only Spanish and French are supported.",
			targetLanguage,
		)
	}
}

// Tools wraps the toolset for the provider's function-calling loop.
func (set *Toolset) Tools() []tools.Tool {
	return []tools.Tool{
		{
			Schema: mcp.NewTool(
				"translate_to_spanish",
				mcp.WithDescription("Translates a given text to Spanish by calling an external Spanish translation agent."),
				mcp.WithString("text_to_translate", mcp.Description("The text that needs to be translated into Spanish."), mcp.Required()),
			),
			Execute: func(ctx context.Context, args map[string]any) (string, error) {
				return set.TranslateToSpanish(ctx, tools.StringArg(args, "text_to_translate")), nil
			},
		},
		{
			Schema: mcp.NewTool(
				"translate_to_french",
				mcp.WithDescription("Translates a given text to French by calling an external French translation agent."),
				mcp.WithString("text_to_translate", mcp.Description("The text that needs to be translated into French."), mcp.Required()),
			),
			Execute: func(ctx context.Context, args map[string]any) (string, error) {
				return set.TranslateToFrench(ctx, tools.StringArg(args, "text_to_translate")), nil
			},
		},
		{
			Schema: mcp.NewTool(
				"search_and_translate_news",
				mcp.WithDescription("Searches for news and translates the results to the target language (Spanish or French)."),
				mcp.WithString("search_query", mcp.Description("The query to use for searching news."), mcp.Required()),
				mcp.WithString("target_language", mcp.Description("The language to translate the news into."), mcp.Required()),
			),
			Execute: func(ctx context.Context, args map[string]any) (string, error) {
				return set.SearchAndTranslateNews(
					ctx,
					tools.StringArg(args, "search_query"),
					tools.StringArg(args, "target_language"),
				), nil
			},
		},
	}
}
