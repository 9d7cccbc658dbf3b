package credstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/athenaeum-hq/athenaeum-go/token"
	"github.com/pkg/errors"
)

var _ Store = (*FileStore)(nil)

// FileStore persists the credential pair as a JSON file, the terminal
// client's equivalent of the browser's localStorage slot. The file is
// written with 0600 permissions since it holds live credentials.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by the file at path. The parent
// directory is created on the first Save.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("[NewFileStore] path is required")
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Save(pair token.Pair) error {
	if !pair.Complete() {
		return ErrIncompletePair
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "[FileStore.Save] mkdir")
	}

	data, err := json.Marshal(pair)
	if err != nil {
		return errors.Wrap(err, "[FileStore.Save] marshal")
	}

	// Write-then-rename so a crash mid-write never leaves a partial pair.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "[FileStore.Save] write")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "[FileStore.Save] rename")
	}
	return nil
}

func (s *FileStore) Load() (token.Pair, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return token.Pair{}, false, nil
	}
	if err != nil {
		return token.Pair{}, false, errors.Wrap(err, "[FileStore.Load] read")
	}

	var pair token.Pair
	if err := json.Unmarshal(data, &pair); err != nil {
		return token.Pair{}, false, errors.Wrapf(ErrCorruptStore, "[FileStore.Load] %v", err)
	}
	if !pair.Complete() {
		return token.Pair{}, false, errors.Wrap(ErrCorruptStore, "[FileStore.Load] partial pair on disk")
	}
	return pair, true, nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[FileStore.Clear] remove")
	}
	return nil
}
