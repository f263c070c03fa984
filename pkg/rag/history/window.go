package history

import (
	"strings"

	"cv-chatbot-be/internal/constant"
	"cv-chatbot-be/pkg/rag/session"
)

// WindowFor returns how many trailing turns of chat history the given
// intent gets. Follow-up questions need more surrounding context than
// anything else.
func WindowFor(intent string) int {
	if intent == constant.IntentFollowUp {
		return constant.HistoryWindowFollowUp
	}
	return constant.HistoryWindowDefault
}

// Flatten renders the last n turns as "User:"/"Assistant:" lines, one
// turn per line, with embedded newlines collapsed so the block can be
// dropped into a prompt verbatim.
func Flatten(turns []session.Turn, n int) string {
	if n <= 0 || len(turns) == 0 {
		return ""
	}
	if n > len(turns) {
		n = len(turns)
	}

	lines := make([]string, 0, n)
	for _, turn := range turns[len(turns)-n:] {
		role := "Assistant"
		if turn.Role == constant.ChatRoleUser {
			role = "User"
		}
		content := strings.Join(strings.Fields(turn.Text), " ")
		lines = append(lines, role+": "+content)
	}
	return strings.Join(lines, "\n")
}

// ForIntent combines the window policy and flattening in one call.
func ForIntent(turns []session.Turn, intent string) string {
	return Flatten(turns, WindowFor(intent))
}
