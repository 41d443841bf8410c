// Package guestcart persists the anonymous cart on the local device. It is
// only consulted while no authenticated identity exists.
package guestcart

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/greenbasket/storefront/internal/domain"
)

// storageKey matches the key the browser client uses in local storage.
const storageKey = "cart"

type Store interface {
	// Load returns the stored snapshot. Missing or malformed content means
	// "no cart"; it is never surfaced as an error.
	Load() domain.CartSnapshot
	// Save persists the snapshot best-effort.
	Save(domain.CartSnapshot)
}

// FileStore keeps the guest cart as a single JSON document on disk.
type FileStore struct {
	path   string
	logger *zap.Logger
}

func NewFileStore(dir string, logger *zap.Logger) *FileStore {
	return &FileStore{
		path:   filepath.Join(dir, storageKey+".json"),
		logger: logger,
	}
}

func (s *FileStore) Load() domain.CartSnapshot {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return domain.CartSnapshot{}
	}

	var snap domain.CartSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Warn("discarding malformed guest cart", zap.String("path", s.path), zap.Error(err))
		return domain.CartSnapshot{}
	}

	// A line with quantity 0 is removed, never resurrected.
	lines := snap.Lines[:0]
	for _, l := range snap.Lines {
		if l.Quantity >= 1 {
			lines = append(lines, l)
		}
	}
	return domain.CartSnapshot{Lines: lines}
}

func (s *FileStore) Save(snap domain.CartSnapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		s.logger.Warn("marshal guest cart failed", zap.Error(err))
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		s.logger.Warn("guest cart dir create failed", zap.Error(err))
		return
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		s.logger.Warn("guest cart save failed", zap.String("path", s.path), zap.Error(err))
	}
}
