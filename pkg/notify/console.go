package notify

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

type consoleSender struct {
	log logrus.FieldLogger
}

// NewConsole creates a sender that writes messages to the log instead of
// delivering them. Used in development.
func NewConsole(log logrus.FieldLogger) Sender {
	return &consoleSender{log: log}
}

func (s *consoleSender) Send(_ context.Context, msg Message) error {
	s.log.WithFields(logrus.Fields{
		"from":    msg.From,
		"to":      strings.Join(msg.To, ", "),
		"subject": msg.Subject,
	}).Info(msg.Body)
	return nil
}
