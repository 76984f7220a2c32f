package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/digitalocean/contact-form/pkg/clients/airtable"
	"github.com/digitalocean/contact-form/pkg/models"
)

type airtableStore struct {
	client airtable.Client
	table  string
}

// NewAirtable creates a store that writes each submission as a row of table.
// The table needs the text columns submission_id, page_id, form_data, digest
// and submitted_at.
func NewAirtable(client airtable.Client, table string) Store {
	return &airtableStore{client: client, table: table}
}

func (s *airtableStore) Save(ctx context.Context, sub models.Submission) (models.Submission, error) {
	sub = prepare(sub)

	data, err := json.Marshal(sub.Data)
	if err != nil {
		return models.Submission{}, fmt.Errorf("encode form data: %w", err)
	}

	_, err = s.client.CreateRecord(ctx, s.table, map[string]any{
		"submission_id": sub.ID,
		"page_id":       sub.PageID,
		"form_data":     string(data),
		"digest":        sub.Digest,
		"submitted_at":  sub.SubmittedAt.Format(time.RFC3339Nano),
	})
	if err != nil {
		return models.Submission{}, err
	}
	return sub, nil
}

func (s *airtableStore) Count(ctx context.Context, pageID string) (int, error) {
	records, err := s.client.ListRecords(ctx, s.table, pageFormula(pageID))
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (s *airtableStore) List(ctx context.Context, pageID string) ([]models.Submission, error) {
	records, err := s.client.ListRecords(ctx, s.table, pageFormula(pageID))
	if err != nil {
		return nil, err
	}

	out := make([]models.Submission, 0, len(records))
	for _, rec := range records {
		sub := models.Submission{
			ID:     stringField(rec.Fields, "submission_id"),
			PageID: stringField(rec.Fields, "page_id"),
			Digest: stringField(rec.Fields, "digest"),
		}
		if err := json.Unmarshal([]byte(stringField(rec.Fields, "form_data")), &sub.Data); err != nil {
			return nil, fmt.Errorf("decode form data of %s: %w", rec.ID, err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, stringField(rec.Fields, "submitted_at")); err == nil {
			sub.SubmittedAt = ts
		}
		out = append(out, sub)
	}
	return out, nil
}

func pageFormula(pageID string) string {
	return fmt.Sprintf(`{page_id}="%s"`, strings.ReplaceAll(pageID, `"`, `\"`))
}

func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}
