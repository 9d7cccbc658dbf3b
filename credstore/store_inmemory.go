package credstore

import (
	"sync"

	"github.com/athenaeum-hq/athenaeum-go/token"
)

var _ Store = (*InMemoryStore)(nil)

// InMemoryStore holds the credential pair in process memory. Used by tests
// and by callers that do not want credentials written to disk.
type InMemoryStore struct {
	mu      sync.RWMutex
	pair    token.Pair
	present bool
}

// NewInMemoryStore creates an empty in-memory credential store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Save(pair token.Pair) error {
	if !pair.Complete() {
		return ErrIncompletePair
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = pair
	s.present = true
	return nil
}

func (s *InMemoryStore) Load() (token.Pair, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.present {
		return token.Pair{}, false, nil
	}
	return s.pair, true, nil
}

func (s *InMemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = token.Pair{}
	s.present = false
	return nil
}
