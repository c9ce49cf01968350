// File path: internal/api/types.go
package api

import (
	"github.com/isyuricunha/website-sub003/internal/assistant"
	"github.com/isyuricunha/website-sub003/internal/common"
	"github.com/isyuricunha/website-sub003/internal/recommend"
	"github.com/isyuricunha/website-sub003/internal/siteindex"
)

const (
	defaultCitationLimit       = 5
	defaultRecommendationLimit = 3
)

type citationsRequest struct {
	Message  string `json:"message"`
	Locale   string `json:"locale"`
	PagePath string `json:"pagePath,omitempty"`
	Limit    *int   `json:"limit,omitempty"`
}

type citationsResponse struct {
	RequestID string               `json:"requestId"`
	Citations []siteindex.Citation `json:"citations"`
}

type indexResponse struct {
	RequestID string            `json:"requestId"`
	Locale    string            `json:"locale"`
	Entries   []siteindex.Entry `json:"entries"`
}

type contextResponse struct {
	RequestID   string                 `json:"requestId"`
	PageContext *siteindex.PageContext `json:"pageContext"`
}

type recommendationsRequest struct {
	Slug       string   `json:"slug"`
	Locale     string   `json:"locale"`
	Limit      *int     `json:"limit,omitempty"`
	ExcludeIDs []string `json:"excludeIds,omitempty"`
}

type recommendationsResponse struct {
	RequestID       string                     `json:"requestId"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
}

type answerRequest struct {
	Query      string   `json:"query"`
	Locale     string   `json:"locale"`
	Limit      *int     `json:"limit,omitempty"`
	ExcludeIDs []string `json:"excludeIds,omitempty"`
}

type answerResponse struct {
	RequestID string               `json:"requestId"`
	Message   string               `json:"message"`
	Citations []siteindex.Citation `json:"citations"`
}

type chatContextRequest struct {
	Message      string                          `json:"message"`
	Locale       string                          `json:"locale"`
	CurrentPage  string                          `json:"currentPage,omitempty"`
	PagePath     string                          `json:"pagePath,omitempty"`
	Conversation []assistant.ConversationMessage `json:"conversation,omitempty"`
	HistoryLimit int                             `json:"historyLimit,omitempty"`
}

type chatContextResponse struct {
	RequestID   string                  `json:"requestId"`
	Mode        assistant.Mode          `json:"mode"`
	Message     string                  `json:"message,omitempty"`
	Messages    []assistant.ChatMessage `json:"messages,omitempty"`
	Citations   []siteindex.Citation    `json:"citations"`
	PageContext *siteindex.PageContext  `json:"pageContext,omitempty"`
}

type logsResponse struct {
	RequestID string            `json:"requestId"`
	Entries   []common.LogEntry `json:"entries"`
}
