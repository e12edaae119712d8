package store

import (
	"context"
	"sort"

	"github.com/xanderstrike/traktkit/lib/common"
)

// maxEntries is how many journal entries are kept per user
const maxEntries = 100

// Store is the interface for All the store types
type Store interface {
	WriteRatingsEntry(entry common.RatingsEntry) error
	GetRatingsEntries(username string) ([]common.RatingsEntry, error)
	Ping(ctx context.Context) error
}

// Utils
func flatTransform(s string) []string { return []string{} }

func sortNewest(entries []common.RatingsEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SubmittedAt.After(entries[j].SubmittedAt)
	})
}

func newestFirst(entries []common.RatingsEntry) []common.RatingsEntry {
	sortNewest(entries)
	if len(entries) > maxEntries {
		entries = entries[:maxEntries]
	}
	return entries
}
