// File path: internal/assistant/mode.go
package assistant

import "strings"

// Mode selects how the serving layer should answer a message.
type Mode string

const (
	// ModeChat prepares LLM context for free-form conversation.
	ModeChat Mode = "chat"
	// ModeNavigate answers directly from the site index without generation.
	ModeNavigate Mode = "navigate"
)

// InferMode guesses whether a message is a navigation question. The
// heuristic mirrors the site's English and Portuguese phrasings.
func InferMode(message string) Mode {
	m := strings.ToLower(message)
	if strings.Contains(m, "onde encontro") || strings.Contains(m, "where can i find") || strings.Contains(m, "help me navigate") {
		return ModeNavigate
	}
	if strings.HasPrefix(m, "onde ") || strings.HasPrefix(m, "where ") {
		return ModeNavigate
	}
	return ModeChat
}
