package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"echofeed-backend/internal/models"
)

// MemoryStore keeps submissions in process memory. It is the fallback
// backend when no MongoDB connection is available; contents are lost on
// restart.
type MemoryStore struct {
	mu          sync.Mutex
	submissions []models.Submission
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Insert(ctx context.Context, s *models.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s.Timestamp == 0 {
		s.Timestamp = time.Now().UnixMilli()
	}
	m.submissions = append(m.submissions, *s)
	return nil
}

func (m *MemoryStore) ListAll(ctx context.Context) ([]models.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Submission, len(m.submissions))
	copy(out, m.submissions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	return out, nil
}

func (m *MemoryStore) UpdatePartial(ctx context.Context, id string, fields Fields) (*models.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.submissions {
		if m.submissions[i].ID != id {
			continue
		}
		if err := applyFields(&m.submissions[i], fields); err != nil {
			return nil, err
		}
		updated := m.submissions[i]
		return &updated, nil
	}
	return nil, ErrNotFound
}

// applyFields mirrors the shallow $set merge of the Mongo backend for the
// fields a submission exposes to partial updates.
func applyFields(s *models.Submission, fields Fields) error {
	for key, value := range fields {
		switch key {
		case "helpfulResponse":
			switch v := value.(type) {
			case nil:
				s.HelpfulResponse = nil
			case bool:
				b := v
				s.HelpfulResponse = &b
			case *bool:
				s.HelpfulResponse = v
			default:
				return fmt.Errorf("field helpfulResponse: expected bool, got %T", value)
			}
		case "rating":
			switch v := value.(type) {
			case int:
				s.Rating = v
			case float64:
				s.Rating = int(v)
			default:
				return fmt.Errorf("field rating: expected number, got %T", value)
			}
		case "reviewText":
			v, ok := value.(string)
			if !ok {
				return fmt.Errorf("field reviewText: expected string, got %T", value)
			}
			s.ReviewText = v
		default:
			return fmt.Errorf("field %s is not updatable", key)
		}
	}
	return nil
}
