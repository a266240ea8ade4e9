package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/unicrm/unicli/core/user"
)

// The two persisted session keys.
const (
	tokenKey = "token"
	userKey  = "user"
)

// Store persists the session token and cached user record as two JSON
// values under a state directory. Writes are atomic (temp file + rename).
type Store struct {
	mu  sync.Mutex
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "session: create state dir")
	}
	return &Store{dir: dir}, nil
}

// Save persists token and user together. Both are written or, on the first
// failure, neither remains; login must never leave a partial session.
func (s *Store) Save(token string, usr user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(tokenKey, token); err != nil {
		return err
	}
	if err := s.write(userKey, usr); err != nil {
		s.remove(tokenKey)
		return err
	}
	return nil
}

// Token returns the persisted session token, if any.
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var token string
	if err := s.read(tokenKey, &token); err != nil || token == "" {
		return "", false
	}
	return token, true
}

// User returns the cached user record, if any.
func (s *Store) User() (user.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var usr user.User
	if err := s.read(userKey, &usr); err != nil || usr.ID == "" {
		return user.User{}, false
	}
	return usr, true
}

// Clear removes both keys. Clearing an empty store is a no-op.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.remove(tokenKey)
	s.remove(userKey)
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *Store) write(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "session: marshal %s", key)
	}
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "session: write %s", key)
	}
	if _, err = tmp.Write(data); err == nil {
		err = tmp.Close()
	} else {
		_ = tmp.Close()
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrapf(err, "session: write %s", key)
	}
	if err = os.Chmod(tmp.Name(), 0o600); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrapf(err, "session: write %s", key)
	}
	if err = os.Rename(tmp.Name(), s.path(key)); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrapf(err, "session: write %s", key)
	}
	return nil
}

func (s *Store) read(key string, v interface{}) error {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (s *Store) remove(key string) {
	_ = os.Remove(s.path(key))
}
