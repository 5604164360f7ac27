// Package store persists finalized hand records to a whole-document JSON
// file, deduplicates on write, and exports the stored hands in tabular (CSV)
// and PHH (TOML) forms.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/tablescribe/internal/fileutil"
	"github.com/lox/tablescribe/internal/hand"
)

// ErrStoreCorrupt marks a store file that could not be parsed. It is always
// recovered locally by treating the store as empty; bad prior data never
// fails a run.
var ErrStoreCorrupt = errors.New("hand store corrupt")

// Store is a file-backed sequence of finalized hand records. The file is
// read and rewritten in full on every persist, so the process must be the
// store's only writer.
type Store struct {
	path   string
	logger *log.Logger
}

// New creates a store backed by the file at path. The file need not exist.
func New(path string, logger *log.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger.WithPrefix("store"),
	}
}

// Path returns the store's backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads all stored hand records. A missing file is an empty store; a
// corrupt file is logged and treated as empty.
func (s *Store) Load() []hand.Record {
	data, ok, err := fileutil.ReadIfExists(s.path)
	if err != nil {
		s.logger.Warn("Failed to read hand store, treating as empty", "path", s.path, "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	var records []hand.Record
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("Hand store unparseable, treating as empty",
			"path", s.path,
			"error", fmt.Errorf("%w: %v", ErrStoreCorrupt, err))
		return nil
	}
	return records
}

// Persist appends a finalized record to the store. It returns true when the
// record was written, false when it was skipped (no winners, or a duplicate
// of an already stored hand). Only the file write itself can fail; a failed
// write leaves the prior document intact.
func (s *Store) Persist(rec *hand.Record) (bool, error) {
	if len(rec.Winners) == 0 {
		s.logger.Warn("Skipping hand with no winners", "id", rec.ID)
		return false, nil
	}

	records := s.Load()
	if s.duplicate(records, rec) {
		s.logger.Info("Skipping duplicate hand", "id", rec.ID, "dealer", rec.DealerPos)
		return false, nil
	}

	records = append(records, *rec)
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return false, fmt.Errorf("encode hand store: %w", err)
	}
	if err := fileutil.WriteAtomic(s.path, data, 0o644); err != nil {
		return false, fmt.Errorf("write hand store: %w", err)
	}

	s.logger.Info("Hand persisted",
		"id", rec.ID,
		"dealer", rec.DealerPos,
		"pot", rec.Pot,
		"total", len(records))
	return true, nil
}

// duplicate reports whether an equivalent hand is already stored. The key
// is (dealer position, has-winners): an approximation, since two hands dealt
// from the same button before the store rotates will collide.
func (s *Store) duplicate(records []hand.Record, rec *hand.Record) bool {
	for i := range records {
		if records[i].DealerPos == rec.DealerPos && len(records[i].Winners) > 0 {
			return true
		}
	}
	return false
}
