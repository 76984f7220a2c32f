package store

import (
	"context"
	"sync"

	"github.com/digitalocean/contact-form/pkg/models"
)

type memoryStore struct {
	mu          sync.RWMutex
	submissions []models.Submission
}

// NewMemory creates a store that keeps submissions in process memory
func NewMemory() Store {
	return &memoryStore{}
}

func (s *memoryStore) Save(_ context.Context, sub models.Submission) (models.Submission, error) {
	sub = prepare(sub)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions = append(s.submissions, sub)
	return sub, nil
}

func (s *memoryStore) Count(ctx context.Context, pageID string) (int, error) {
	subs, err := s.List(ctx, pageID)
	return len(subs), err
}

func (s *memoryStore) List(_ context.Context, pageID string) ([]models.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Submission
	for _, sub := range s.submissions {
		if sub.PageID == pageID {
			out = append(out, sub)
		}
	}
	return out, nil
}
