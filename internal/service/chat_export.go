package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"cv-chatbot-be/internal/constant"
	"cv-chatbot-be/pkg/rag/session"
)

// exportTurns renders a conversation in one of the downloadable
// formats the sidebar offers: txt, json or md.
func exportTurns(turns []session.Turn, format string) (string, error) {
	switch format {
	case "txt":
		return exportText(turns), nil
	case "json":
		return exportJSON(turns)
	case "md":
		return exportMarkdown(turns), nil
	default:
		return "", fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("unsupported export format %q", format))
	}
}

func exportText(turns []session.Turn) string {
	lines := make([]string, 0, len(turns))
	for _, turn := range turns {
		role := "Assistant"
		if turn.Role == constant.ChatRoleUser {
			role = "User"
		}
		content := strings.ReplaceAll(turn.Text, "\n", "\n    ")
		lines = append(lines, fmt.Sprintf("%s:\n    %s\n", role, content))
	}
	return strings.Join(lines, "\n")
}

func exportJSON(turns []session.Turn) (string, error) {
	type exportedTurn struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	exported := make([]exportedTurn, len(turns))
	for i, turn := range turns {
		exported[i] = exportedTurn{Role: turn.Role, Content: turn.Text}
	}

	raw, err := json.MarshalIndent(exported, "", "  ")
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func exportMarkdown(turns []session.Turn) string {
	blocks := make([]string, 0, len(turns))
	for _, turn := range turns {
		role := "**Alexandros Clone**"
		if turn.Role == constant.ChatRoleUser {
			role = "**You**"
		}
		blocks = append(blocks, fmt.Sprintf("%s:\n\n%s\n", role, turn.Text))
	}
	return strings.Join(blocks, "\n---\n")
}
