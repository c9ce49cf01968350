// File path: internal/api/server_test.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/isyuricunha/website-sub003/internal/content"
)

func fixtureCatalog() content.Catalog {
	return content.Catalog{
		Posts: []content.Post{
			{Locale: "en", Slug: "hello", Title: "Hello World", Summary: "Intro post", Content: "Hello content", Tags: []string{"go"}, Category: "dev"},
			{Locale: "en", Slug: "art-of-starting-over", Title: "The Art of Starting Over", Summary: "Starting fresh", Content: "Body", Tags: []string{"go"}, Category: "dev"},
			{Locale: "en", Slug: "quiet", Title: "Quiet Days", Summary: "Slow living", Content: "Body"},
			{Locale: "pt", Slug: "hello", Title: "Olá Mundo", Summary: "Post introdutório", Content: "Corpo"},
		},
		Projects: []content.Project{
			{Locale: "en", Slug: "proj", Name: "Proj", Description: "A project", Content: "Readme"},
		},
		Pages: []content.Page{
			{Locale: "en", Slug: "about", Path: "en/about", Content: "About me"},
		},
		Snippets: []content.Snippet{
			{Locale: "en", Slug: "s1", Title: "Snippet 1", Description: "First", Content: "code", Tags: []string{"go"}},
			{Locale: "en", Slug: "s2", Title: "Snippet 2", Description: "Second", Content: "code", Tags: []string{"go"}},
		},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv, err := NewServer(content.Static(fixtureCatalog()), nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv
}

func doJSON(t *testing.T, srv *Server, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response: %v (body %s)", err, rec.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected health response: %d %q", rec.Code, rec.Body.String())
	}
}

func TestIndexEndpoint(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/v1/index?locale=en", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		RequestID string `json:"requestId"`
		Locale    string `json:"locale"`
		Entries   []struct {
			ID   string `json:"id"`
			Href string `json:"href"`
		} `json:"entries"`
	}
	decodeBody(t, rec, &resp)
	if resp.RequestID == "" {
		t.Fatal("expected request id")
	}
	if resp.Locale != "en" {
		t.Fatalf("unexpected locale %q", resp.Locale)
	}
	if len(resp.Entries) != 7 {
		t.Fatalf("expected 7 entries, got %d", len(resp.Entries))
	}
	if resp.Entries[0].ID != "post:hello" || resp.Entries[0].Href != "/en/blog/hello" {
		t.Fatalf("unexpected first entry %+v", resp.Entries[0])
	}
}

func TestIndexEndpointDefaultLocale(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/v1/index", nil)

	var resp struct {
		Locale string `json:"locale"`
	}
	decodeBody(t, rec, &resp)
	if resp.Locale != "en" {
		t.Fatalf("expected default locale en, got %q", resp.Locale)
	}
}

func TestContextEndpoint(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/v1/context?path=/pt/blog/hello&locale=en", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		PageContext *struct {
			Type  string `json:"type"`
			Title string `json:"title"`
			Href  string `json:"href"`
		} `json:"pageContext"`
	}
	decodeBody(t, rec, &resp)
	if resp.PageContext == nil {
		t.Fatal("expected page context")
	}
	if resp.PageContext.Title != "Hello World" || resp.PageContext.Href != "/en/blog/hello" {
		t.Fatalf("unexpected page context %+v", resp.PageContext)
	}
}

func TestContextEndpointRequiresPath(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/v1/context", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestContextEndpointUnknownPath(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/v1/context?path=/spotify", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	var resp struct {
		PageContext *struct{} `json:"pageContext"`
	}
	decodeBody(t, rec, &resp)
	if resp.PageContext != nil {
		t.Fatal("expected null page context")
	}
}

func TestCitationsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/v1/citations", map[string]interface{}{
		"message":  "starting over",
		"locale":   "en",
		"pagePath": "/en/blog/hello",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Citations []struct {
			ID string `json:"id"`
		} `json:"citations"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.Citations) < 2 {
		t.Fatalf("expected page citation plus matches, got %d", len(resp.Citations))
	}
	if resp.Citations[0].ID != "page" {
		t.Fatalf("expected page citation first, got %q", resp.Citations[0].ID)
	}
	if resp.Citations[1].ID != "post:art-of-starting-over" {
		t.Fatalf("expected lexical match second, got %q", resp.Citations[1].ID)
	}
}

func TestCitationsEndpointHonorsLimit(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/v1/citations", map[string]interface{}{
		"message": "hello starting proj snippet",
		"locale":  "en",
		"limit":   1,
	})

	var resp struct {
		Citations []struct {
			ID string `json:"id"`
		} `json:"citations"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.Citations) != 1 {
		t.Fatalf("expected 1 citation, got %d", len(resp.Citations))
	}
}

func TestCitationsEndpointRequiresMessage(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/v1/citations", map[string]interface{}{"message": "  "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRecommendPostsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/v1/recommendations/posts", map[string]interface{}{
		"slug":   "hello",
		"locale": "en",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Recommendations []struct {
			ID         string `json:"id"`
			IsFallback bool   `json:"isFallback"`
		} `json:"recommendations"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.Recommendations) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(resp.Recommendations))
	}
	if resp.Recommendations[0].ID != "post:art-of-starting-over" || resp.Recommendations[0].IsFallback {
		t.Fatalf("expected related post first, got %+v", resp.Recommendations[0])
	}
	if resp.Recommendations[1].ID != "post:quiet" || !resp.Recommendations[1].IsFallback {
		t.Fatalf("expected fallback second, got %+v", resp.Recommendations[1])
	}
}

func TestRecommendPostsEndpointRequiresSlug(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/v1/recommendations/posts", map[string]interface{}{"locale": "en"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRecommendSnippetsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/v1/recommendations/snippets", map[string]interface{}{
		"slug":   "s1",
		"locale": "en",
	})

	var resp struct {
		Recommendations []struct {
			ID     string `json:"id"`
			Reason string `json:"reason"`
		} `json:"recommendations"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.Recommendations) != 1 || resp.Recommendations[0].ID != "snippet:s2" {
		t.Fatalf("unexpected recommendations %+v", resp.Recommendations)
	}
	if resp.Recommendations[0].Reason != "shares tags: go" {
		t.Fatalf("unexpected reason %q", resp.Recommendations[0].Reason)
	}
}

func TestNavigationAnswerEndpoint(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/v1/answers/navigation", map[string]interface{}{
		"query":  "about",
		"locale": "en",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Message   string `json:"message"`
		Citations []struct {
			ID string `json:"id"`
		} `json:"citations"`
	}
	decodeBody(t, rec, &resp)
	if !strings.Contains(resp.Message, "- about: /en/about") {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	if len(resp.Citations) != 1 || resp.Citations[0].ID != "page:about" {
		t.Fatalf("unexpected citations %+v", resp.Citations)
	}
}

func TestPostAnswerEndpointExcludesQuotedTitle(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/v1/answers/posts", map[string]interface{}{
		"query":  `Recommend more posts like "Hello World"`,
		"locale": "en",
	})

	var resp struct {
		Message   string `json:"message"`
		Citations []struct {
			ID string `json:"id"`
		} `json:"citations"`
	}
	decodeBody(t, rec, &resp)
	for _, c := range resp.Citations {
		if c.ID == "post:hello" {
			t.Fatal("quoted post recommended back")
		}
	}
	if !strings.HasPrefix(resp.Message, "You might enjoy these posts:") {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestChatContextNavigateMode(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/v1/chat/context", map[string]interface{}{
		"message": "Where can I find the about page?",
		"locale":  "en",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Mode     string `json:"mode"`
		Message  string `json:"message"`
		Messages []struct {
			Role string `json:"role"`
		} `json:"messages"`
	}
	decodeBody(t, rec, &resp)
	if resp.Mode != "navigate" {
		t.Fatalf("expected navigate mode, got %q", resp.Mode)
	}
	if resp.Message == "" {
		t.Fatal("expected a direct answer message")
	}
	if len(resp.Messages) != 0 {
		t.Fatal("navigate mode must not prepare provider messages")
	}
}

func TestChatContextChatMode(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/v1/chat/context", map[string]interface{}{
		"message":     "Tell me about the hello post",
		"locale":      "en",
		"currentPage": "blog",
		"pagePath":    "/en/blog/hello",
		"conversation": []map[string]string{
			{"role": "user", "content": "hi"},
			{"role": "assistant", "content": "hello!"},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Mode     string `json:"mode"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
		Citations []struct {
			ID string `json:"id"`
		} `json:"citations"`
		PageContext *struct {
			Title string `json:"title"`
		} `json:"pageContext"`
	}
	decodeBody(t, rec, &resp)
	if resp.Mode != "chat" {
		t.Fatalf("expected chat mode, got %q", resp.Mode)
	}
	if len(resp.Messages) != 4 {
		t.Fatalf("expected system + 2 history + user, got %d", len(resp.Messages))
	}
	if resp.Messages[0].Role != "system" || !strings.Contains(resp.Messages[0].Content, "You are Yue") {
		t.Fatalf("unexpected system message %+v", resp.Messages[0])
	}
	last := resp.Messages[len(resp.Messages)-1]
	if last.Role != "user" || last.Content != "Tell me about the hello post" {
		t.Fatalf("unexpected final message %+v", last)
	}
	if resp.PageContext == nil || resp.PageContext.Title != "Hello World" {
		t.Fatalf("unexpected page context %+v", resp.PageContext)
	}
	if len(resp.Citations) == 0 || resp.Citations[0].ID != "page" {
		t.Fatalf("expected page citation first, got %+v", resp.Citations)
	}
}

func TestChatContextRequiresMessage(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/v1/chat/context", map[string]interface{}{"message": " "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestProviderFailureIs500(t *testing.T) {
	srv, err := NewServer(failingProvider{}, nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	rec := doJSON(t, srv, http.MethodGet, "/v1/index", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestNewServerRequiresProvider(t *testing.T) {
	if _, err := NewServer(nil, nil); err == nil {
		t.Fatal("expected error for nil provider")
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()

	merged := base.Merge(Config{Locales: []string{"en", "pt", "fr"}, DefaultLocale: " pt "})
	if len(merged.Locales) != 3 || merged.DefaultLocale != "pt" {
		t.Fatalf("unexpected merge result %+v", merged)
	}

	unchanged := base.Merge(Config{})
	if unchanged.DefaultLocale != "en" || len(unchanged.Locales) != len(content.DefaultLocales) {
		t.Fatalf("empty override must keep defaults, got %+v", unchanged)
	}
}

type failingProvider struct{}

func (failingProvider) Snapshot(context.Context) (content.Catalog, error) {
	return content.Catalog{}, errors.New("backend unavailable")
}
