package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"inspection-report/internal/models"
)

// MemoryStore keeps everything in process. Submissions are indexed by row id
// and by user id; users by name.
type MemoryStore struct {
	mu sync.RWMutex

	order  []uuid.UUID
	rows   map[uuid.UUID]*models.Submission
	byUser map[string][]uuid.UUID

	users map[string][]models.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rows:   make(map[uuid.UUID]*models.Submission),
		byUser: make(map[string][]uuid.UUID),
		users:  make(map[string][]models.User),
	}
}

func (m *MemoryStore) CreateSubmission(_ context.Context, sub *models.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *sub
	cp.PhotoURLs = append([]string(nil), sub.PhotoURLs...)
	m.rows[cp.RowID] = &cp
	m.order = append(m.order, cp.RowID)
	if cp.UserID != "" {
		m.byUser[cp.UserID] = append(m.byUser[cp.UserID], cp.RowID)
	}
	return nil
}

func (m *MemoryStore) ListSubmissions(_ context.Context, userID string) ([]models.Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.order
	if userID != "" {
		ids = m.byUser[userID]
	}

	subs := make([]models.Submission, 0, len(ids))
	for _, id := range ids {
		if row, ok := m.rows[id]; ok {
			subs = append(subs, *row)
		}
	}
	return subs, nil
}

func (m *MemoryStore) GetSubmission(_ context.Context, rowID uuid.UUID) (*models.Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	row, ok := m.rows[rowID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (m *MemoryStore) DeleteSubmission(_ context.Context, rowID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.rows[rowID]
	if !ok {
		return ErrNotFound
	}
	delete(m.rows, rowID)
	m.order = without(m.order, rowID)
	if row.UserID != "" {
		m.byUser[row.UserID] = without(m.byUser[row.UserID], rowID)
	}
	return nil
}

func (m *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.users[user.Name]) > 0 {
		return ErrDuplicateName
	}
	m.users[user.Name] = append(m.users[user.Name], *user)
	return nil
}

func (m *MemoryStore) FindUsersByName(_ context.Context, name string) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]models.User(nil), m.users[name]...), nil
}

func (m *MemoryStore) Close() error {
	return nil
}

func without(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
