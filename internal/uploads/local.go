package uploads

import (
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// LocalStore writes uploads to a directory served as static files.
type LocalStore struct {
	Dir     string
	BaseURL string
}

// NewLocalStore returns a LocalStore rooted at dir; uploaded files become
// reachable under baseURL.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "uploads: could not create upload directory")
	}
	return &LocalStore{Dir: dir, BaseURL: baseURL}, nil
}

// Save implements Store.
func (s *LocalStore) Save(_ context.Context, filename, _ string, r io.Reader) (string, error) {
	name := objectName(filename)
	f, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", errors.Wrap(err, "uploads: could not create file")
	}
	defer f.Close()
	if _, err = io.Copy(f, r); err != nil {
		return "", errors.Wrap(err, "uploads: write failed")
	}
	u, err := url.JoinPath(s.BaseURL, name)
	if err != nil {
		return "", errors.Wrap(err, "uploads: could not build url")
	}
	return u, nil
}
