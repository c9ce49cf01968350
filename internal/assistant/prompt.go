// File path: internal/assistant/prompt.go
package assistant

import (
	"strings"

	"github.com/isyuricunha/website-sub003/internal/siteindex"
)

// ChatMessage is one turn of a prepared chat exchange, shaped for whichever
// provider the external generation layer talks to.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ConversationMessage is a prior turn supplied by the caller.
type ConversationMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

// SiteContext carries everything the mascot needs to answer in character:
// where the visitor is, what that page contains, which citations support the
// answer, and the recent conversation.
type SiteContext struct {
	CurrentPage  string                 `json:"currentPage"`
	PagePath     string                 `json:"pagePath,omitempty"`
	PageContext  *siteindex.PageContext `json:"pageContext,omitempty"`
	Citations    []siteindex.Citation   `json:"citations,omitempty"`
	Conversation []ConversationMessage  `json:"conversation,omitempty"`
	RecentPosts  []string               `json:"recentPosts,omitempty"`
	Projects     []string               `json:"projects,omitempty"`
	Locale       string                 `json:"locale"`
}

const (
	defaultHistoryLimit    = 15
	conversationBlockLimit = 10
)

var localeInstructions = map[string]string{
	"en": "Respond in English",
	"pt": "Responda em português brasileiro",
	"fr": "Répondez en français",
	"de": "Antworten Sie auf Deutsch",
	"zh": "请用中文回答",
}

// SystemMessage renders the mascot system prompt: persona, site context, the
// current page, recent conversation, and the citation list the model may
// reference. Hrefs come only from the catalog, so the model has no reason to
// invent URLs.
func SystemMessage(ctx SiteContext) string {
	instruction, ok := localeInstructions[ctx.Locale]
	if !ok {
		instruction = "Reply in the same language the user speaks to you"
	}

	conversationBlock := "none"
	if len(ctx.Conversation) > 0 {
		recent := ctx.Conversation
		if len(recent) > conversationBlockLimit {
			recent = recent[len(recent)-conversationBlockLimit:]
		}
		lines := make([]string, 0, len(recent))
		for _, m := range recent {
			role := "Assistant"
			if m.Role == "user" {
				role = "User"
			}
			lines = append(lines, role+": "+m.Content)
		}
		conversationBlock = strings.Join(lines, "\n")
	}

	pageBlock := "none"
	if ctx.PageContext != nil {
		pageBlock = strings.Join([]string{
			"type: " + string(ctx.PageContext.Type),
			"title: " + ctx.PageContext.Title,
			"description: " + ctx.PageContext.Description,
			"href: " + ctx.PageContext.Href,
			"content_excerpt: " + ctx.PageContext.Excerpt,
		}, "\n")
	}

	sourcesBlock := "none"
	if len(ctx.Citations) > 0 {
		lines := make([]string, 0, len(ctx.Citations))
		for _, c := range ctx.Citations {
			line := "- " + c.Title + " (" + string(c.Type) + "): " + c.Href
			if c.Excerpt != "" {
				line += " — " + c.Excerpt
			}
			lines = append(lines, line)
		}
		sourcesBlock = strings.Join(lines, "\n")
	}

	pagePath := ctx.PagePath
	if pagePath == "" {
		pagePath = "unknown"
	}

	var b strings.Builder
	b.WriteString("You are Yue, the friendly virtual mascot created by Yuri Cunha for his personal website.\n\n")
	b.WriteString("Personality:\n")
	b.WriteString("- Friendly, helpful, and enthusiastic\n")
	b.WriteString("- Knowledgeable about web development, databases, and technology\n")
	b.WriteString("- Speaks in a casual, approachable tone\n")
	b.WriteString("- Sometimes uses emojis to be more expressive\n")
	b.WriteString("- " + instruction + "\n\n")
	b.WriteString("Context about the website:\n")
	b.WriteString("- Owner: Yuri Cunha, a Database Administrator (DBA) and Server Infrastructure Specialist from Brazil\n")
	b.WriteString("- Focus: Modern web development, server/warehouse infrastructure, database optimization, and tech projects\n")
	b.WriteString("- Current page: " + ctx.CurrentPage + "\n")
	b.WriteString("- Current path: " + pagePath + "\n")
	b.WriteString("- Recent posts: " + joinOrNone(ctx.RecentPosts) + "\n")
	b.WriteString("- Featured projects: " + joinOrNone(ctx.Projects) + "\n\n")
	b.WriteString("Page context (if available):\n")
	b.WriteString(pageBlock + "\n\n")
	b.WriteString("Conversation (recent):\n")
	b.WriteString(conversationBlock + "\n\n")
	b.WriteString("Sources (internal site links you can reference; do not invent URLs):\n")
	b.WriteString(sourcesBlock + "\n\n")
	b.WriteString("About Yuri:\n")
	b.WriteString("- Database Administrator (DBA) and Server Infrastructure Specialist\n")
	b.WriteString("- Experienced with Go programming language, GitHub API integration, bug fixing with GitHub team\n")
	b.WriteString("- Website sections:\n")
	b.WriteString("  * Blog: https://yuricunha.com/blog\n")
	b.WriteString("  * Setup/Stacks: https://yuricunha.com/\n")
	b.WriteString("  * Guestbook: https://yuricunha.com/guestbook\n")
	b.WriteString("  * Projects: https://yuricunha.com/projects (functional with GitHub API)\n")
	b.WriteString("  * About: https://yuricunha.com/about\n")
	b.WriteString("  * Music: https://yuricunha.com/spotify\n")
	b.WriteString("- Email: me@yuricunha.com\n")
	b.WriteString("- GitHub: https://github.com/isyuricunha\n\n")
	b.WriteString("Guidelines:\n")
	b.WriteString("- Provide helpful but concise explanations for technical topics\n")
	b.WriteString("- Share relevant information about Yuri or the website when asked\n")
	b.WriteString("- Stay in character as the website mascot\n")
	b.WriteString("- Keep responses brief unless specifically asked for detailed explanations")
	return b.String()
}

// History returns the trailing conversation turns, at most limit, shaped as
// chat messages. A non-positive limit falls back to the default.
func History(ctx SiteContext, limit int) []ChatMessage {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	turns := ctx.Conversation
	if len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	if len(turns) == 0 {
		return nil
	}
	out := make([]ChatMessage, 0, len(turns))
	for _, m := range turns {
		out = append(out, ChatMessage{Role: m.Role, Content: m.Content})
	}
	return out
}

// Messages assembles the full prepared exchange: system prompt, trimmed
// history, then the user's message. The external generation layer sends this
// to whichever provider it runs.
func Messages(ctx SiteContext, userMessage string, historyLimit int) []ChatMessage {
	messages := make([]ChatMessage, 0, historyLimit+2)
	messages = append(messages, ChatMessage{Role: "system", Content: SystemMessage(ctx)})
	messages = append(messages, History(ctx, historyLimit)...)
	messages = append(messages, ChatMessage{Role: "user", Content: userMessage})
	return messages
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}
