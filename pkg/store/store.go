// Package store persists accepted form submissions.
package store

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/digitalocean/contact-form/pkg/models"
)

// Store saves and reads back form submissions. Every Save creates a new
// record; identical submissions are not merged.
type Store interface {
	Save(ctx context.Context, sub models.Submission) (models.Submission, error)
	Count(ctx context.Context, pageID string) (int, error)
	List(ctx context.Context, pageID string) ([]models.Submission, error)
}

// prepare fills in the ID and timestamp of a new submission
func prepare(sub models.Submission) models.Submission {
	if sub.ID == "" {
		sub.ID = ulid.Make().String()
	}
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now().UTC()
	}
	return sub
}
