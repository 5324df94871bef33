// Package session manages the client-side authentication session: the bearer
// token, the logged-in account, and their persistence across restarts.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Storage persists the session token between runs. Implementations must
// treat an absent token as a normal condition, not an error.
type Storage interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// fileStorage keeps the token in a small JSON file under the key "authToken".
type fileStorage struct {
	path string
	mu   sync.Mutex
}

// NewFileStorage returns a Storage backed by the JSON file at path.
// Parent directories are created on first save.
func NewFileStorage(path string) Storage {
	return &fileStorage{path: path}
}

type tokenFile struct {
	AuthToken string `json:"authToken"`
}

func (s *fileStorage) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	var tf tokenFile
	if err := json.Unmarshal(raw, &tf); err != nil {
		// A corrupt token file is equivalent to being logged out.
		return "", nil
	}
	return tf.AuthToken, nil
}

func (s *fileStorage) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	raw, err := json.Marshal(tokenFile{AuthToken: token})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}

func (s *fileStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// memoryStorage keeps the token in process memory only. Used in tests and
// in contexts where persistence is unwanted.
type memoryStorage struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStorage returns a Storage that does not survive process exit.
func NewMemoryStorage() Storage {
	return &memoryStorage{}
}

func (s *memoryStorage) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *memoryStorage) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *memoryStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
