package store

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/peterbourgon/diskv"

	"github.com/xanderstrike/traktkit/lib/common"
)

// DiskStore is a storage engine that writes to the disk
type DiskStore struct {
	basePath string
	db       *diskv.Diskv
}

// NewDiskStore will instantiate the disk storage
func NewDiskStore(basePath string) (*DiskStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("disk store: %w", err)
	}
	d := diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    flatTransform,
		CacheSizeMax: 1024 * 1024,
	})
	return &DiskStore{basePath: basePath, db: d}, nil
}

// Ping will check if the base directory is still there
func (s *DiskStore) Ping(ctx context.Context) error {
	_, err := os.Stat(s.basePath)
	return err
}

func diskPrefix(username string) string {
	return fmt.Sprintf("ratings.%s.", url.PathEscape(strings.ToLower(username)))
}

// WriteRatingsEntry will write one file per entry and drop the oldest ones
// past maxEntries
func (s *DiskStore) WriteRatingsEntry(entry common.RatingsEntry) error {
	entry.Username = strings.ToLower(entry.Username)
	b, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	if err := s.db.Write(diskPrefix(entry.Username)+entry.ID, b); err != nil {
		return err
	}

	entries, err := s.readJournal(entry.Username)
	if err != nil {
		return err
	}
	if len(entries) <= maxEntries {
		return nil
	}
	sortNewest(entries)
	for _, old := range entries[maxEntries:] {
		if err := s.db.Erase(diskPrefix(old.Username) + old.ID); err != nil {
			return fmt.Errorf("disk trim: %w", err)
		}
	}
	return nil
}

// GetRatingsEntries will load the journal of a user, newest first
func (s *DiskStore) GetRatingsEntries(username string) ([]common.RatingsEntry, error) {
	entries, err := s.readJournal(username)
	if err != nil {
		return nil, err
	}
	return newestFirst(entries), nil
}

func (s *DiskStore) readJournal(username string) ([]common.RatingsEntry, error) {
	username = strings.ToLower(username)
	cancel := make(chan struct{})
	defer close(cancel)

	entries := []common.RatingsEntry{}
	for key := range s.db.KeysPrefix(diskPrefix(username), cancel) {
		b, err := s.db.Read(key)
		if err != nil {
			return nil, err
		}
		var entry common.RatingsEntry
		if err := json.Unmarshal(b, &entry); err != nil {
			return nil, fmt.Errorf("corrupt journal entry %s: %w", key, err)
		}
		// the key prefix of "sean" also matches "sean.x"
		if strings.ToLower(entry.Username) == username {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}
