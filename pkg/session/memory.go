package session

import "sync"

// MemoryStorage is Storage that lives only as long as the process.
type MemoryStorage struct {
	mu    sync.Mutex
	token string
	err   error
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Load() (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", false, m.err
	}
	return m.token, m.token != "", nil
}

func (m *MemoryStorage) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.token = token
	return nil
}

func (m *MemoryStorage) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.token = ""
	return nil
}

func (m *MemoryStorage) Close() error {
	return nil
}

// SetError makes every later operation fail with err until it is reset with nil.
func (m *MemoryStorage) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}
