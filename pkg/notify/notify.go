// Package notify sends staff notifications about accepted submissions.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/digitalocean/contact-form/pkg/models"
)

// Message is a plain-text email
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// Sender delivers a message
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Recipients splits a comma separated address list, dropping blanks
func Recipients(toAddress string) []string {
	var out []string
	for _, addr := range strings.Split(toAddress, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// NewMessage addresses a message for a submission using the page's email settings
func NewMessage(cfg models.EmailConfig, fields models.FormDefinition, cleaned models.CleanedData) Message {
	return Message{
		From:    cfg.FromAddress,
		To:      Recipients(cfg.ToAddress),
		Subject: cfg.Subject,
		Body:    RenderBody(fields, cleaned),
	}
}

// RenderBody lists "Label: value" for each field in form order. fields should
// already exclude the spam protection field.
func RenderBody(fields models.FormDefinition, cleaned models.CleanedData) string {
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		label := f.Label
		if label == "" {
			label = f.Name
		}
		lines = append(lines, fmt.Sprintf("%s: %s", label, formatValue(cleaned[f.Name])))
	}
	return strings.Join(lines, "\n")
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []string:
		return strings.Join(val, ", ")
	case bool:
		if val {
			return "Yes"
		}
		return "No"
	case float64:
		return fmt.Sprintf("%g", val)
	case time.Time:
		return val.Format("2006-01-02 15:04")
	}
	return fmt.Sprint(v)
}
