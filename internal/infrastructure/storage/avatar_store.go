// Package storage persists uploaded avatar files on local disk, mirroring how
// the uploads directory is exposed as a static route by the router.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// PublicPrefix is the URL prefix avatar files are served under.
const PublicPrefix = "/uploads/profile_pics"

// AvatarStore writes profile pictures to dir and returns their public path.
type AvatarStore struct {
	dir string
}

// NewAvatarStore creates the target directory if needed.
func NewAvatarStore(dir string) (*AvatarStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &AvatarStore{dir: dir}, nil
}

// Dir returns the directory files are written to, for static route wiring.
func (s *AvatarStore) Dir() string {
	return s.dir
}

// Save stores the file under a per-user name (<userID>_<unix><ext>) so a
// re-upload never collides with another user's picture.
func (s *AvatarStore) Save(userID, filename string, file io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	name := fmt.Sprintf("%s_%d%s", userID, time.Now().Unix(), ext)

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create avatar file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("write avatar file: %w", err)
	}

	return PublicPrefix + "/" + name, nil
}
