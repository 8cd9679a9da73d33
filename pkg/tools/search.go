package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	fiberClient "github.com/gofiber/fiber/v3/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/viper"
)

// DefaultSearchEndpoint is the Brave Search web API.
const DefaultSearchEndpoint = "https://api.search.brave.com/res/v1/web/search"

/*
WebSearch wraps the Brave Search HTTP API as a tool the search agent's model
can call.
*/
type WebSearch struct {
	endpoint string
	apiKey   string
	limit    int
	conn     *fiberClient.Client
}

type WebSearchOption func(*WebSearch)

func NewWebSearch(options ...WebSearchOption) *WebSearch {
	search := &WebSearch{
		endpoint: DefaultSearchEndpoint,
		apiKey:   viper.GetString("tools.search.apiKey"),
		limit:    5,
		conn:     fiberClient.New(),
	}

	for _, option := range options {
		option(search)
	}

	return search
}

// WithSearchEndpoint overrides the API endpoint, used by tests.
func WithSearchEndpoint(endpoint string) WebSearchOption {
	return func(search *WebSearch) {
		search.endpoint = endpoint
	}
}

func WithSearchAPIKey(apiKey string) WebSearchOption {
	return func(search *WebSearch) {
		search.apiKey = apiKey
	}
}

type braveResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

/*
Run performs a web search and renders the top results as plain text, one
result per block, for the model to summarize.
*/
func (search *WebSearch) Run(ctx context.Context, query string) (string, error) {
	res, err := search.conn.Get(
		search.endpoint+"?"+url.Values{"q": []string{query}}.Encode(),
		fiberClient.Config{
			Header: map[string]string{
				"Accept":               "application/json",
				"X-Subscription-Token": search.apiKey,
			},
		},
	)

	if err != nil {
		return "", err
	}

	if res.StatusCode() != 200 {
		return "", fmt.Errorf("search failed: HTTP %d", res.StatusCode())
	}

	var parsed braveResponse

	if err := json.Unmarshal(res.Body(), &parsed); err != nil {
		return "", fmt.Errorf("failed to decode search response: %w", err)
	}

	if len(parsed.Web.Results) == 0 {
		return "No results found for: " + query, nil
	}

	var sb strings.Builder

	for i, result := range parsed.Web.Results {
		if i >= search.limit {
			break
		}
		sb.WriteString(fmt.Sprintf("%s\n%s\n%s\n\n", result.Title, result.URL, result.Description))
	}

	return strings.TrimSpace(sb.String()), nil
}

// Tool exposes the search as a model-callable tool.
func (search *WebSearch) Tool() Tool {
	schema := mcp.NewTool(
		"web_search",
		mcp.WithDescription("Search the web for current information on a topic."),
		mcp.WithString(
			"query",
			mcp.Description("The search query."),
			mcp.Required(),
		),
	)

	return Tool{
		Schema: schema,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			query := StringArg(args, "query")
			log.Info("web search", "query", query)
			return search.Run(ctx, query)
		},
	}
}
