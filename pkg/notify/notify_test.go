package notify

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digitalocean/contact-form/pkg/models"
)

func TestRecipients(t *testing.T) {
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, Recipients(" a@example.com, ,b@example.com "))
	assert.Nil(t, Recipients(""))
}

func TestRenderBodyKeepsFormOrder(t *testing.T) {
	fields := models.FormDefinition{
		{Name: "name", Label: "Name"},
		{Name: "email", Label: "Email"},
		{Name: "topics", Label: "Topics"},
		{Name: "subscribe", Label: "Subscribe"},
		{Name: "seats", Label: "Seats"},
		{Name: "when", Label: "When"},
	}
	cleaned := models.CleanedData{
		"email":     "ada@example.com",
		"name":      "Ada",
		"topics":    []string{"go", "forms"},
		"subscribe": true,
		"seats":     2.0,
		"when":      time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
	}

	body := RenderBody(fields, cleaned)

	assert.Equal(t, "Name: Ada\nEmail: ada@example.com\nTopics: go, forms\nSubscribe: Yes\nSeats: 2\nWhen: 2024-03-01 09:30", body)
}

func TestNewMessage(t *testing.T) {
	msg := NewMessage(models.EmailConfig{
		FromAddress: "site@example.com",
		ToAddress:   "staff@example.com, boss@example.com",
		Subject:     "New contact",
	}, models.FormDefinition{{Name: "email", Label: "Email"}}, models.CleanedData{"email": "x@example.com"})

	assert.Equal(t, Message{
		From:    "site@example.com",
		To:      []string{"staff@example.com", "boss@example.com"},
		Subject: "New contact",
		Body:    "Email: x@example.com",
	}, msg)
}

func TestConsoleSenderLogs(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	err := NewConsole(log).Send(context.Background(), Message{From: "a@example.com", To: []string{"b@example.com"}, Subject: "Hi", Body: "Email: x"})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"subject":"Hi"`)
	assert.Contains(t, buf.String(), `"msg":"Email: x"`)
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	require.NoError(t, r.Send(context.Background(), Message{Subject: "one"}))
	assert.Len(t, r.Messages(), 1)

	r.Err = assert.AnError
	assert.ErrorIs(t, r.Send(context.Background(), Message{}), assert.AnError)
	assert.Len(t, r.Messages(), 1)
}
