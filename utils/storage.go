package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// DiskStore writes uploaded images under Root, which the router serves
// statically at /uploads.
type DiskStore struct {
	Root string
}

// Save writes the file under <recordID>/<unixnano>_<random>.<ext> and
// returns the storage path relative to the root.
func (s DiskStore) Save(recordID uint, fileName string, data []byte) (string, error) {
	dir := filepath.Join(s.Root, fmt.Sprintf("%d", recordID))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	ext := filepath.Ext(fileName)
	if ext == "" {
		ext = ".jpg"
	}
	name := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), uuid.NewString()[:8], ext)

	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		return "", err
	}
	return filepath.ToSlash(filepath.Join(fmt.Sprintf("%d", recordID), name)), nil
}

// PublicURL resolves a stored path to the URL the static route serves.
func PublicURL(storagePath string) string {
	return "/uploads/" + storagePath
}
