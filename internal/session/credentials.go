package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/openshelf/openshelf/types"
)

// credentialFile is the fixed key the persisted identity lives under.
const credentialFile = "session.json"

// CredentialStore persists the session marker: the last known User,
// used as a fallback identity when the server cannot confirm the
// session.
type CredentialStore interface {
	Load() (types.User, bool, error)
	Save(user types.User) error
	Clear() error
}

// FileCredentialStore keeps the marker as a JSON file in the client
// state directory.
type FileCredentialStore struct {
	path string
}

// NewFileCredentialStore stores the marker under dir.
func NewFileCredentialStore(dir string) *FileCredentialStore {
	return &FileCredentialStore{path: filepath.Join(dir, credentialFile)}
}

// Load reads the persisted identity. The second return is false when
// no marker exists.
func (s *FileCredentialStore) Load() (types.User, bool, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.User{}, false, nil
		}
		return types.User{}, false, err
	}

	var user types.User
	if err := json.Unmarshal(payload, &user); err != nil {
		return types.User{}, false, err
	}
	return user, true, nil
}

// Save writes the identity, creating the state directory on first use.
func (s *FileCredentialStore) Save(user types.User) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, payload, 0o600)
}

// Clear removes the marker. Removing an absent marker is not an error.
func (s *FileCredentialStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
