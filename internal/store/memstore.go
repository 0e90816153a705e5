package store

import (
	"sync"

	"github.com/celerix-dev/celerix-users/pkg/schema"
	"golang.org/x/text/cases"
)

// MemStore is a thread-safe UserStore kept entirely in memory.
type MemStore struct {
	mu     sync.RWMutex
	users  map[int]schema.UserFields
	order  []int // insertion order of live ids
	lastID int
}

var _ UserStore = (*MemStore)(nil)

// NewMemStore returns an empty store. Ids start at 1.
func NewMemStore() *MemStore {
	return &MemStore{
		users: make(map[int]schema.UserFields),
	}
}

func (m *MemStore) List() []schema.UserRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]schema.UserRecord, 0, len(m.order))
	for _, id := range m.order {
		list = append(list, m.record(id))
	}
	return list
}

func (m *MemStore) Get(id int) (schema.UserRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.users[id]; !ok {
		return schema.UserRecord{}, ErrUserNotFound
	}
	return m.record(id), nil
}

func (m *MemStore) Add(fields schema.UserFields) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	// lastID only grows, so deleted ids are never handed out again.
	m.lastID++
	id := m.lastID
	m.users[id] = copyFields(fields)
	m.order = append(m.order, id)
	return id
}

func (m *MemStore) Update(id int, fields schema.UserFields) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return
	}
	m.users[id] = copyFields(fields)
}

func (m *MemStore) Delete(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return
	}
	delete(m.users, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

func (m *MemStore) SearchByEmail(email string) []schema.UserRecord {
	fold := cases.Fold()
	want := fold.String(email)

	m.mu.RLock()
	defer m.mu.RUnlock()

	matches := make([]schema.UserRecord, 0)
	for _, id := range m.order {
		if fold.String(m.users[id].Email) == want {
			matches = append(matches, m.record(id))
		}
	}
	return matches
}

func (m *MemStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}

// record builds a detached copy of a stored user.
// It MUST be called while holding m.mu.
func (m *MemStore) record(id int) schema.UserRecord {
	return schema.UserRecord{ID: id, UserFields: copyFields(m.users[id])}
}

func copyFields(f schema.UserFields) schema.UserFields {
	if f.Age != nil {
		age := *f.Age
		f.Age = &age
	}
	return f
}
