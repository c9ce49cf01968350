// File path: internal/api/handlers.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/isyuricunha/website-sub003/internal/assistant"
	"github.com/isyuricunha/website-sub003/internal/common"
	"github.com/isyuricunha/website-sub003/internal/content"
	"github.com/isyuricunha/website-sub003/internal/recommend"
	"github.com/isyuricunha/website-sub003/internal/siteindex"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	locale := s.locale(r.URL.Query().Get("locale"))
	_, index, err := s.snapshot(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, indexResponse{
		RequestID: uuid.NewString(),
		Locale:    locale,
		Entries:   index.Entries(locale),
	})
}

func (s *Server) handleContext(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSpace(r.URL.Query().Get("path"))
	if path == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("path required"))
		return
	}
	locale := s.locale(r.URL.Query().Get("locale"))
	_, index, err := s.snapshot(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, contextResponse{
		RequestID:   uuid.NewString(),
		PageContext: index.PageContext(path, locale),
	})
}

func (s *Server) handleCitations(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req citationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("message required"))
		return
	}
	_, index, err := s.snapshot(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	citations := index.FindCitations(siteindex.CitationRequest{
		Message:  req.Message,
		Locale:   s.locale(req.Locale),
		PagePath: req.PagePath,
		Limit:    limitOrDefault(req.Limit, defaultCitationLimit),
	})
	logger.Debug("api: citations resolved", "count", len(citations))
	writeJSON(w, http.StatusOK, citationsResponse{
		RequestID: uuid.NewString(),
		Citations: citations,
	})
}

func (s *Server) handleRecommendPosts(w http.ResponseWriter, r *http.Request) {
	s.handleRecommendations(w, r, recommend.Posts)
}

func (s *Server) handleRecommendSnippets(w http.ResponseWriter, r *http.Request) {
	s.handleRecommendations(w, r, recommend.Snippets)
}

func (s *Server) handleRecommendations(
	w http.ResponseWriter,
	r *http.Request,
	run func(catalog content.Catalog, resolve content.PathResolver, req recommend.Request) []recommend.Recommendation,
) {
	var req recommendationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Slug) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("slug required"))
		return
	}
	catalog, _, err := s.snapshot(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	recs := run(catalog, s.resolve, recommend.Request{
		Slug:       req.Slug,
		Locale:     s.locale(req.Locale),
		Limit:      limitOrDefault(req.Limit, defaultRecommendationLimit),
		ExcludeIDs: req.ExcludeIDs,
	})
	writeJSON(w, http.StatusOK, recommendationsResponse{
		RequestID:       uuid.NewString(),
		Recommendations: recs,
	})
}

func (s *Server) handleNavigationAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("query required"))
		return
	}
	_, index, err := s.snapshot(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	answer := assistant.NavigationAnswer(index, assistant.NavigationRequest{
		Query:  req.Query,
		Locale: s.locale(req.Locale),
		Limit:  limitOrDefault(req.Limit, defaultCitationLimit),
	})
	writeJSON(w, http.StatusOK, answerResponse{
		RequestID: uuid.NewString(),
		Message:   answer.Message,
		Citations: answer.Citations,
	})
}

func (s *Server) handlePostRecommendationAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("query required"))
		return
	}
	catalog, _, err := s.snapshot(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	answer := assistant.PostRecommendationAnswer(catalog, s.resolve, assistant.PostRecommendationRequest{
		Query:      req.Query,
		Locale:     s.locale(req.Locale),
		Limit:      limitOrDefault(req.Limit, defaultRecommendationLimit),
		ExcludeIDs: req.ExcludeIDs,
	})
	writeJSON(w, http.StatusOK, answerResponse{
		RequestID: uuid.NewString(),
		Message:   answer.Message,
		Citations: answer.Citations,
	})
}

// handleChatContext prepares everything the external generation layer needs
// for one chat turn. Navigation-mode messages are answered directly from the
// index; chat-mode responses carry the prepared provider messages instead.
func (s *Server) handleChatContext(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req chatContextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("message required"))
		return
	}
	locale := s.locale(req.Locale)
	_, index, err := s.snapshot(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	mode := assistant.InferMode(message)
	requestID := uuid.NewString()
	if mode == assistant.ModeNavigate {
		answer := assistant.NavigationAnswer(index, assistant.NavigationRequest{
			Query:  message,
			Locale: locale,
			Limit:  defaultCitationLimit,
		})
		logger.Info("api: chat context prepared", "mode", mode, "citations", len(answer.Citations))
		writeJSON(w, http.StatusOK, chatContextResponse{
			RequestID: requestID,
			Mode:      mode,
			Message:   answer.Message,
			Citations: answer.Citations,
		})
		return
	}

	citations := index.FindCitations(siteindex.CitationRequest{
		Message:  message,
		Locale:   locale,
		PagePath: req.PagePath,
		Limit:    defaultCitationLimit,
	})
	var pageCtx *siteindex.PageContext
	if strings.TrimSpace(req.PagePath) != "" {
		pageCtx = index.PageContext(req.PagePath, locale)
	}
	siteCtx := assistant.SiteContext{
		CurrentPage:  req.CurrentPage,
		PagePath:     req.PagePath,
		PageContext:  pageCtx,
		Citations:    citations,
		Conversation: req.Conversation,
		Locale:       locale,
	}
	logger.Info("api: chat context prepared", "mode", mode, "citations", len(citations), "page_context", pageCtx != nil)
	writeJSON(w, http.StatusOK, chatContextResponse{
		RequestID:   requestID,
		Mode:        mode,
		Messages:    assistant.Messages(siteCtx, message, req.HistoryLimit),
		Citations:   citations,
		PageContext: pageCtx,
	})
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, logsResponse{
		RequestID: uuid.NewString(),
		Entries:   common.LogEntries(),
	})
}

func limitOrDefault(limit *int, fallback int) int {
	if limit == nil {
		return fallback
	}
	return *limit
}
