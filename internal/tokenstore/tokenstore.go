// Package tokenstore persists the session bearer token across process restarts.
// It is the single piece of durable client state: one key, the token.
package tokenstore

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Store is the durable-storage contract. An absent token loads as the empty
// string with a nil error; errors are reserved for real I/O failures.
type Store interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

type tokenFile struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at,omitempty"`
}

// FileStore keeps the token in a JSON file under the user config directory.
type FileStore struct {
	path string
}

// DefaultPath returns the standard token file location,
// $XDG_CONFIG_HOME/swapmart/token.json or ~/.config/swapmart/token.json.
func DefaultPath() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "swapmart", "token.json")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "swapmart", "token.json")
}

// NewFileStore constructs a FileStore at path, or at DefaultPath when path is empty.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultPath()
	}
	return &FileStore{path: path}
}

// Path returns the backing file location.
func (s *FileStore) Path() string { return s.path }

// Load reads the persisted token. A missing file or an expired record is an
// absent token, not an error.
func (s *FileStore) Load() (string, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	var tf tokenFile
	if err := json.Unmarshal(b, &tf); err != nil {
		return "", err
	}
	if !tf.ExpiresAt.IsZero() && time.Now().After(tf.ExpiresAt) {
		return "", nil
	}
	return tf.AccessToken, nil
}

// Save writes the token with 0600 permissions, recording the expiry carried in
// the token's JWT claims when it parses as one. The signature is not verified;
// the expiry is advisory, the server remains the authority via 401.
func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	tf := tokenFile{AccessToken: token, ExpiresAt: tokenExpiry(token)}
	b, err := json.MarshalIndent(tf, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o600)
}

// Clear removes the persisted token. Clearing an absent token is a no-op.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func tokenExpiry(token string) time.Time {
	var claims jwt.RegisteredClaims
	_, _ = jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) { return nil, nil },
		jwt.WithoutClaimsValidation(),
	)
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu    sync.Mutex
	token string

	LoadErr  error
	SaveErr  error
	ClearErr error
}

func (s *MemStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.LoadErr
}

func (s *MemStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.token = token
	return nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ClearErr != nil {
		return s.ClearErr
	}
	s.token = ""
	return nil
}
