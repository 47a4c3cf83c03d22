package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWeb struct {
	results   []SearchResult
	searchMax int
	searchErr error
	opened    []string
	headlines []string
	newsTopic string
}

func (w *fakeWeb) Search(_ context.Context, _ string, maxResults int) ([]SearchResult, error) {
	w.searchMax = maxResults
	if w.searchErr != nil {
		return nil, w.searchErr
	}
	if len(w.results) > maxResults {
		return w.results[:maxResults], nil
	}
	return w.results, nil
}

func (w *fakeWeb) OpenPage(_ context.Context, url string) error {
	w.opened = append(w.opened, url)
	return nil
}

func (w *fakeWeb) Weather(_ context.Context, city string) (string, error) {
	return "It is 21 degrees and sunny in " + city + ".", nil
}

func (w *fakeWeb) News(_ context.Context, topic string, _ int) ([]string, error) {
	w.newsTopic = topic
	return w.headlines, nil
}

func (w *fakeWeb) Translate(_ context.Context, text, targetLanguage string) (string, error) {
	return `"` + text + `" in ` + targetLanguage + ` is "bonjour"`, nil
}

func newBrowserFixture(t *testing.T) (*Registry, *fakeWeb) {
	t.Helper()

	w := &fakeWeb{}
	r, err := NewRegistry(NewBrowserTools(w)...)
	require.NoError(t, err)
	return r, w
}

// ---

func TestWebSearchTool(t *testing.T) {
	r, w := newBrowserFixture(t)

	w.results = []SearchResult{
		{Title: "Go", Snippet: "An open-source programming language.", URL: "https://go.dev"},
		{Title: "Go (game)", Snippet: "An abstract strategy board game.", URL: "https://en.wikipedia.org/wiki/Go_(game)"},
	}

	result, err := r.Invoke(newTestContext(), "web_search", map[string]any{
		"query": "golang",
	})

	require.NoError(t, err)
	want := `Top results for "golang":` + "\n" +
		"1. Go - An open-source programming language. (https://go.dev)\n" +
		"2. Go (game) - An abstract strategy board game. (https://en.wikipedia.org/wiki/Go_(game))"
	assert.Equal(t, want, result)
	assert.Equal(t, 5, w.searchMax)
}

func TestWebSearchToolNoResults(t *testing.T) {
	r, _ := newBrowserFixture(t)

	result, err := r.Invoke(newTestContext(), "web_search", map[string]any{
		"query": "xyzzy",
	})

	require.NoError(t, err)
	assert.Equal(t, `No results found for "xyzzy".`, result)
}

func TestWebSearchToolValidation(t *testing.T) {
	r, _ := newBrowserFixture(t)

	// Missing required query.
	_, err := r.Invoke(newTestContext(), "web_search", map[string]any{})

	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, CodeValidation, toolErr.Code)

	// ---

	_, err = r.Invoke(newTestContext(), "web_search", map[string]any{
		"query":       "golang",
		"max_results": 50,
	})

	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, CodeValidation, toolErr.Code)
}

func TestWebSearchToolBackendError(t *testing.T) {
	r, w := newBrowserFixture(t)

	w.searchErr = errors.New("search backend returned 503")

	_, err := r.Invoke(newTestContext(), "web_search", map[string]any{
		"query": "golang",
	})

	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, CodeExecution, toolErr.Code)
}

func TestOpenWebpageTool(t *testing.T) {
	r, w := newBrowserFixture(t)

	result, err := r.Invoke(newTestContext(), "open_webpage", map[string]any{
		"url": "https://go.dev",
	})

	require.NoError(t, err)
	assert.Equal(t, "Opened https://go.dev in your browser.", result)
	assert.Equal(t, []string{"https://go.dev"}, w.opened)
}

func TestGetWeatherTool(t *testing.T) {
	r, _ := newBrowserFixture(t)

	result, err := r.Invoke(newTestContext(), "get_weather", map[string]any{
		"city": "Berlin",
	})

	require.NoError(t, err)
	assert.Equal(t, "It is 21 degrees and sunny in Berlin.", result)
}

func TestGetLatestNewsTool(t *testing.T) {
	r, w := newBrowserFixture(t)

	result, err := r.Invoke(newTestContext(), "get_latest_news", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "No news found right now.", result)

	// ---

	w.headlines = []string{"Headline one", "Headline two"}

	result, err = r.Invoke(newTestContext(), "get_latest_news", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "Here are the latest headlines:\n- Headline one\n- Headline two", result)

	result, err = r.Invoke(newTestContext(), "get_latest_news", map[string]any{
		"topic": "technology",
	})
	require.NoError(t, err)
	assert.Equal(t, "technology", w.newsTopic)
	assert.Equal(t, "Here are the latest headlines about technology:\n- Headline one\n- Headline two", result)
}

func TestTranslateTextTool(t *testing.T) {
	r, _ := newBrowserFixture(t)

	result, err := r.Invoke(newTestContext(), "translate_text", map[string]any{
		"text":            "hello",
		"target_language": "French",
	})

	require.NoError(t, err)
	assert.Equal(t, `"hello" in French is "bonjour"`, result)
}

func TestBrowserSideEffectFlags(t *testing.T) {
	r, _ := newBrowserFixture(t)

	flags := map[string]bool{}
	for _, tl := range r.Tools() {
		flags[tl.Name()] = tl.SideEffecting()
	}

	assert.True(t, flags["open_webpage"])
	assert.False(t, flags["web_search"])
	assert.False(t, flags["get_weather"])
	assert.False(t, flags["get_latest_news"])
	assert.False(t, flags["translate_text"])
}
