// Package datasync copies vocabulary collections between storage backends.
package datasync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/at-ishikawa/langcards/internal/storage"
	"github.com/at-ishikawa/langcards/internal/vocabulary"
)

// SyncResult tracks counts of copied collections.
type SyncResult struct {
	New       int
	Skipped   int
	Updated   int
	Unchanged int
	Missing   int
}

// SyncOptions controls sync behavior.
type SyncOptions struct {
	DryRun         bool
	UpdateExisting bool
}

// Syncer copies the collections of users from one key-value store to another.
type Syncer struct {
	source storage.KeyValue
	target storage.KeyValue
	writer io.Writer
}

// NewSyncer creates a new Syncer.
func NewSyncer(source, target storage.KeyValue, writer io.Writer) *Syncer {
	return &Syncer{
		source: source,
		target: target,
		writer: writer,
	}
}

// Keys returns the storage keys holding the vocabulary of userID.
func Keys(userID string) []string {
	return []string{
		storage.Key(vocabulary.WordsCollection, userID),
		storage.Key(vocabulary.FlashcardsCollection, userID),
	}
}

// Sync copies the words and flashcards of every user in userIDs.
// A collection already in the target is only overwritten with UpdateExisting.
// The collections of one user are written together, in a single transaction
// when the target is a SQL store.
func (s *Syncer) Sync(ctx context.Context, userIDs []string, opts SyncOptions) (*SyncResult, error) {
	var result SyncResult
	for _, userID := range userIDs {
		var pending []storage.Entry
		for _, key := range Keys(userID) {
			entry, err := s.syncKey(ctx, key, opts, &result)
			if err != nil {
				return nil, fmt.Errorf("syncKey(%s) > %w", key, err)
			}
			if entry != nil {
				pending = append(pending, *entry)
			}
		}
		if opts.DryRun {
			continue
		}
		if err := storage.SetAll(ctx, s.target, pending); err != nil {
			return nil, fmt.Errorf("storage.SetAll(%s) > %w", userID, err)
		}
	}
	return &result, nil
}

// syncKey reports what happens to key and returns the entry to write, if any.
func (s *Syncer) syncKey(ctx context.Context, key string, opts SyncOptions, result *SyncResult) (*storage.Entry, error) {
	contents, ok, err := s.source.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("source.Get() > %w", err)
	}
	if !ok {
		_, _ = fmt.Fprintf(s.writer, "  [MISSING]  %s\n", key)
		result.Missing++
		return nil, nil
	}
	if !json.Valid(contents) {
		return nil, fmt.Errorf("source collection %s is not valid JSON", key)
	}

	existing, ok, err := s.target.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("target.Get() > %w", err)
	}
	switch {
	case !ok:
		_, _ = fmt.Fprintf(s.writer, "  [NEW]  %s\n", key)
		result.New++
	case bytes.Equal(existing, contents):
		result.Unchanged++
		return nil, nil
	case !opts.UpdateExisting:
		_, _ = fmt.Fprintf(s.writer, "  [SKIP]  %s\n", key)
		result.Skipped++
		return nil, nil
	default:
		_, _ = fmt.Fprintf(s.writer, "  [UPDATE]  %s\n", key)
		result.Updated++
	}
	return &storage.Entry{Key: key, Value: contents}, nil
}
