package history

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExportFormat selects the output format for conversation export
type ExportFormat string

const (
	ExportFormatMarkdown ExportFormat = "markdown"
	ExportFormatJSON     ExportFormat = "json"
)

// ParseExportFormat validates a format name
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(s) {
	case "", "markdown", "md":
		return ExportFormatMarkdown, nil
	case "json":
		return ExportFormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s (markdown or json)", s)
	}
}

// Export renders a conversation in the given format
func (s *Store) Export(id string, format ExportFormat) ([]byte, error) {
	switch format {
	case ExportFormatJSON:
		return s.exportJSON(id)
	default:
		md, err := s.exportMarkdown(id)
		return []byte(md), err
	}
}

func (s *Store) exportMarkdown(id string) (string, error) {
	conv, err := s.GetConversation(id)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("# ")
	sb.WriteString(conv.Title)
	sb.WriteString("\n\n")
	sb.WriteString("**Model:** ")
	sb.WriteString(conv.Model)
	sb.WriteString("\n")
	sb.WriteString("**Created:** ")
	sb.WriteString(conv.CreatedAt.Format("2006-01-02 15:04:05"))
	sb.WriteString("\n")
	sb.WriteString("**Messages:** ")
	sb.WriteString(fmt.Sprintf("%d", len(conv.Messages)))
	sb.WriteString("\n\n---\n\n")

	for i, msg := range conv.Messages {
		role := "User"
		if msg.Role == "assistant" {
			role = "Assistant"
		}

		sb.WriteString("## ")
		sb.WriteString(role)
		if !msg.Timestamp.IsZero() {
			sb.WriteString(msg.Timestamp.Format(" (15:04:05)"))
		}
		sb.WriteString("\n\n")

		if msg.Thoughts != "" {
			sb.WriteString("<details>\n<summary>Thinking</summary>\n\n")
			sb.WriteString(msg.Thoughts)
			sb.WriteString("\n\n</details>\n\n")
		}

		sb.WriteString(msg.Content)
		sb.WriteString("\n")

		if len(msg.Links) > 0 {
			sb.WriteString("\nLinks:\n")
			for _, link := range msg.Links {
				sb.WriteString("- ")
				sb.WriteString(link)
				sb.WriteString("\n")
			}
		}

		if i < len(conv.Messages)-1 {
			sb.WriteString("\n---\n\n")
		}
	}

	return sb.String(), nil
}

func (s *Store) exportJSON(id string) ([]byte, error) {
	conv, err := s.GetConversation(id)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(conv, "", "  ")
}
