package tool

import (
	"context"
	"fmt"
	"strings"
)

// SearchResult is one web search hit.
type SearchResult struct {
	Title   string
	URL     string
	Snippet string
}

// Web abstracts internet lookups for the browser agent: search, page opening
// and the convenience queries users actually ask a voice assistant.
type Web interface {
	Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error)
	OpenPage(ctx context.Context, url string) error
	Weather(ctx context.Context, city string) (string, error)
	News(ctx context.Context, topic string, maxResults int) ([]string, error)
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}

// NewBrowserTools builds the web lookup tool set over a Web backend.
func NewBrowserTools(w Web) []Tool {
	webSearch := NewFunctionTool(
		"web_search",
		"Search the web and return the top results.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "What to search for.",
				},
				"max_results": map[string]any{
					"type":        "integer",
					"description": "How many results to return. Defaults to 5.",
					"minimum":     float64(1),
					"maximum":     float64(10),
				},
			},
			"required": []string{"query"},
		},
		func(toolCtx *Context, args map[string]any) (any, error) {
			query := stringArg(args, "query")

			results, err := w.Search(toolCtx.Context(), query, intArg(args, "max_results", 5))
			if err != nil {
				return nil, err
			}
			if len(results) == 0 {
				return fmt.Sprintf("No results found for %q.", query), nil
			}

			var b strings.Builder
			fmt.Fprintf(&b, "Top results for %q:\n", query)
			for i, r := range results {
				fmt.Fprintf(&b, "%d. %s - %s (%s)\n", i+1, r.Title, r.Snippet, r.URL)
			}
			return strings.TrimRight(b.String(), "\n"), nil
		},
	)

	openWebpage := NewFunctionTool(
		"open_webpage",
		"Open a URL in the user's default browser.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"url": map[string]any{
					"type":        "string",
					"description": "Address to open, including the scheme.",
				},
			},
			"required": []string{"url"},
		},
		func(toolCtx *Context, args map[string]any) (any, error) {
			url := stringArg(args, "url")
			if err := w.OpenPage(toolCtx.Context(), url); err != nil {
				return nil, err
			}
			return fmt.Sprintf("Opened %s in your browser.", url), nil
		},
		WithSideEffect(),
	)

	getWeather := NewFunctionTool(
		"get_weather",
		"Get the current weather for a city.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"city": map[string]any{
					"type":        "string",
					"description": "City name, e.g. Berlin.",
				},
			},
			"required": []string{"city"},
		},
		func(toolCtx *Context, args map[string]any) (any, error) {
			report, err := w.Weather(toolCtx.Context(), stringArg(args, "city"))
			if err != nil {
				return nil, err
			}
			return report, nil
		},
	)

	getNews := NewFunctionTool(
		"get_latest_news",
		"Get the latest news headlines, optionally focused on a topic.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"topic": map[string]any{
					"type":        "string",
					"description": "Topic to focus on. Leave empty for general headlines.",
				},
				"max_results": map[string]any{
					"type":        "integer",
					"description": "How many headlines to return. Defaults to 5.",
					"minimum":     float64(1),
					"maximum":     float64(10),
				},
			},
		},
		func(toolCtx *Context, args map[string]any) (any, error) {
			topic := stringArg(args, "topic")

			headlines, err := w.News(toolCtx.Context(), topic, intArg(args, "max_results", 5))
			if err != nil {
				return nil, err
			}
			if len(headlines) == 0 {
				return "No news found right now.", nil
			}

			var b strings.Builder
			if topic == "" {
				b.WriteString("Here are the latest headlines:\n")
			} else {
				fmt.Fprintf(&b, "Here are the latest headlines about %s:\n", topic)
			}
			for _, h := range headlines {
				fmt.Fprintf(&b, "- %s\n", h)
			}
			return strings.TrimRight(b.String(), "\n"), nil
		},
	)

	translateText := NewFunctionTool(
		"translate_text",
		"Translate text into a target language.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text": map[string]any{
					"type":        "string",
					"description": "Text to translate.",
				},
				"target_language": map[string]any{
					"type":        "string",
					"description": "Language to translate into, e.g. French.",
				},
			},
			"required": []string{"text", "target_language"},
		},
		func(toolCtx *Context, args map[string]any) (any, error) {
			out, err := w.Translate(toolCtx.Context(), stringArg(args, "text"), stringArg(args, "target_language"))
			if err != nil {
				return nil, err
			}
			return out, nil
		},
	)

	return []Tool{webSearch, openWebpage, getWeather, getNews, translateText}
}
