package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digitalocean/contact-form/pkg/clients/airtable"
	"github.com/digitalocean/contact-form/pkg/models"
)

type fakeAirtable struct {
	tables map[string][]airtable.Record
}

func (f *fakeAirtable) CreateRecord(_ context.Context, table string, fields map[string]any) (airtable.Record, error) {
	if f.tables == nil {
		f.tables = map[string][]airtable.Record{}
	}
	rec := airtable.Record{ID: "rec" + fields["submission_id"].(string), Fields: fields}
	f.tables[table] = append(f.tables[table], rec)
	return rec, nil
}

func (f *fakeAirtable) ListRecords(_ context.Context, table, formula string) ([]airtable.Record, error) {
	var out []airtable.Record
	for _, rec := range f.tables[table] {
		if pageFormula(rec.Fields["page_id"].(string)) == formula {
			out = append(out, rec)
		}
	}
	return out, nil
}

func backends(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := OpenSqlite(filepath.Join(t.TempDir(), "submissions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })

	return map[string]Store{
		"memory":   NewMemory(),
		"sqlite":   sqlite,
		"airtable": NewAirtable(&fakeAirtable{}, "Submissions"),
	}
}

func TestStoreSaveAndList(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			saved, err := s.Save(ctx, models.Submission{
				PageID: "contact",
				Data:   models.CleanedData{"email": "someone@example.com"},
				Digest: "abc",
			})
			require.NoError(t, err)
			assert.NotEmpty(t, saved.ID)
			assert.WithinDuration(t, time.Now(), saved.SubmittedAt, time.Minute)

			subs, err := s.List(ctx, "contact")
			require.NoError(t, err)
			require.Len(t, subs, 1)
			assert.Equal(t, saved.ID, subs[0].ID)
			assert.Equal(t, "someone@example.com", subs[0].Data["email"])
			assert.Equal(t, "abc", subs[0].Digest)
		})
	}
}

func TestStoreIdenticalSubmissionsCreateDistinctRecords(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			sub := models.Submission{PageID: "contact", Data: models.CleanedData{"name": "Ada"}}

			first, err := s.Save(ctx, sub)
			require.NoError(t, err)
			second, err := s.Save(ctx, sub)
			require.NoError(t, err)

			assert.NotEqual(t, first.ID, second.ID)
			n, err := s.Count(ctx, "contact")
			require.NoError(t, err)
			assert.Equal(t, 2, n)
		})
	}
}

func TestStoreCountIsPerPage(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_, err := s.Save(ctx, models.Submission{PageID: "contact", Data: models.CleanedData{}})
			require.NoError(t, err)

			n, err := s.Count(ctx, "newsletter")
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}
