// File path: internal/assistant/prompt_test.go
package assistant

import (
	"fmt"
	"strings"
	"testing"

	"github.com/isyuricunha/website-sub003/internal/siteindex"
)

func TestSystemMessageIncludesContext(t *testing.T) {
	prompt := SystemMessage(SiteContext{
		CurrentPage: "blog",
		PagePath:    "/en/blog/hello",
		PageContext: &siteindex.PageContext{
			Type:        "post",
			Title:       "Hello World",
			Description: "Intro",
			Href:        "/en/blog/hello",
			Excerpt:     "Hello content",
		},
		Citations: []siteindex.Citation{
			{ID: "post:hello", Title: "Hello World", Href: "/en/blog/hello", Excerpt: "Intro", Type: "post"},
		},
		RecentPosts: []string{"Hello World"},
		Projects:    []string{"Proj"},
		Locale:      "en",
	})

	for _, want := range []string{
		"You are Yue",
		"Respond in English",
		"Current page: blog",
		"Current path: /en/blog/hello",
		"Recent posts: Hello World",
		"Featured projects: Proj",
		"title: Hello World",
		"- Hello World (post): /en/blog/hello",
		"do not invent URLs",
		"About Yuri:",
		"GitHub: https://github.com/isyuricunha",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestSystemMessageDefaults(t *testing.T) {
	prompt := SystemMessage(SiteContext{CurrentPage: "home", Locale: "es"})

	for _, want := range []string{
		"Reply in the same language the user speaks to you",
		"Current path: unknown",
		"Recent posts: none",
		"Page context (if available):\nnone",
		"Conversation (recent):\nnone",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestSystemMessagePortugueseInstruction(t *testing.T) {
	prompt := SystemMessage(SiteContext{CurrentPage: "home", Locale: "pt"})
	if !strings.Contains(prompt, "Responda em português brasileiro") {
		t.Fatal("expected Portuguese instruction")
	}
}

func TestSystemMessageTrimsConversation(t *testing.T) {
	var turns []ConversationMessage
	for i := 0; i < 14; i++ {
		turns = append(turns, ConversationMessage{Role: "user", Content: fmt.Sprintf("turn %d", i)})
	}
	prompt := SystemMessage(SiteContext{CurrentPage: "home", Locale: "en", Conversation: turns})

	if strings.Contains(prompt, "turn 3") {
		t.Fatal("expected older turns to be dropped")
	}
	if !strings.Contains(prompt, "User: turn 4") || !strings.Contains(prompt, "User: turn 13") {
		t.Fatal("expected the last ten turns")
	}
}

func TestHistoryTrimsToLimit(t *testing.T) {
	ctx := SiteContext{Conversation: []ConversationMessage{
		{Role: "user", Content: "one"},
		{Role: "assistant", Content: "two"},
		{Role: "user", Content: "three"},
	}}

	history := History(ctx, 2)
	if len(history) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(history))
	}
	if history[0].Content != "two" || history[1].Content != "three" {
		t.Fatalf("expected trailing turns, got %+v", history)
	}

	if got := History(SiteContext{}, 2); got != nil {
		t.Fatalf("expected nil history for empty conversation, got %+v", got)
	}
	if got := History(ctx, 0); len(got) != 3 {
		t.Fatalf("non-positive limit uses the default, got %d turns", len(got))
	}
}

func TestMessagesShape(t *testing.T) {
	ctx := SiteContext{
		CurrentPage: "home",
		Locale:      "en",
		Conversation: []ConversationMessage{
			{Role: "user", Content: "hi"},
			{Role: "assistant", Content: "hello!"},
		},
	}

	messages := Messages(ctx, "what do you recommend?", 15)
	if len(messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(messages))
	}
	if messages[0].Role != "system" {
		t.Fatalf("expected system first, got %q", messages[0].Role)
	}
	if messages[1].Role != "user" || messages[2].Role != "assistant" {
		t.Fatalf("expected history in order, got %+v", messages[1:3])
	}
	last := messages[len(messages)-1]
	if last.Role != "user" || last.Content != "what do you recommend?" {
		t.Fatalf("expected the user message last, got %+v", last)
	}
}
