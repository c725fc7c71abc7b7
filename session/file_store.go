package session

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/openshelf/go-inventory-console/internal/errors"
)

// storageKey is the single well-known key the token lives under, matching the
// browser frontend's localStorage slot.
const storageKey = "access_token"

const sessionFileName = "session.json"

// FileStore keeps the token in a small JSON file inside the data folder.
type FileStore struct {
	path string
}

var _ Store = &FileStore{}

// NewFileStore returns a store backed by <dataFolder>/session.json.
func NewFileStore(dataFolder string) *FileStore {
	return &FileStore{path: filepath.Join(dataFolder, sessionFileName)}
}

func (fs *FileStore) Token() (string, error) {
	data, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrapf(err, "[FileStore.Token] read %s", fs.path)
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		// A corrupt session file reads as "no token" so that the caller falls
		// back to the login flow instead of failing hard.
		return "", nil
	}
	return values[storageKey], nil
}

func (fs *FileStore) SetToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(fs.path), 0o700); err != nil {
		return errors.Wrapf(err, "[FileStore.SetToken] create data folder")
	}

	data, err := json.Marshal(map[string]string{storageKey: token})
	if err != nil {
		return errors.Wrapf(err, "[FileStore.SetToken] marshal")
	}
	if err := os.WriteFile(fs.path, data, 0o600); err != nil {
		return errors.Wrapf(err, "[FileStore.SetToken] write %s", fs.path)
	}
	return nil
}

func (fs *FileStore) Clear() error {
	err := os.Remove(fs.path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "[FileStore.Clear] remove %s", fs.path)
	}
	return nil
}
