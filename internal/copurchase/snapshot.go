// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package copurchase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/outfitter/internal/catalog"
)

// Key layout of a snapshot database.
const (
	prefixPartners = "partners:"
	metaKey        = "snapshot:meta"
)

// SnapshotMeta describes a stored snapshot.
type SnapshotMeta struct {
	CreatedAt time.Time `json:"created_at"`
	Articles  int       `json:"articles"`
	Records   int       `json:"records"`
	Source    string    `json:"source,omitempty"`
}

// SnapshotStore persists aggregated partner lists in BadgerDB so a service
// can start without re-reading the shard files. One key per article holds
// its partners ordered by count.
type SnapshotStore struct {
	db    *badger.DB
	owned bool
}

// OpenSnapshotStore opens (or creates) a snapshot database at path. An empty
// path opens an in-memory store.
func OpenSnapshotStore(path string) (*SnapshotStore, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}
	return &SnapshotStore{db: db, owned: true}, nil
}

// NewSnapshotStore wraps an already open database. Close does not close it.
func NewSnapshotStore(db *badger.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Close releases the database if the store opened it.
func (s *SnapshotStore) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}

func partnersKey(id int64) []byte {
	return []byte(prefixPartners + catalog.Code(id))
}

// Save replaces the stored snapshot with the contents of ix. The meta key
// is removed before the old partners are dropped and written back only after
// every partner list is flushed, so a failed save leaves no snapshot rather
// than a partial one.
func (s *SnapshotStore) Save(ctx context.Context, ix *Index, source string) (SnapshotMeta, error) {
	if err := ctx.Err(); err != nil {
		return SnapshotMeta{}, err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(metaKey))
	})
	if err != nil {
		return SnapshotMeta{}, fmt.Errorf("invalidate previous snapshot: %w", err)
	}
	if err := s.db.DropPrefix([]byte(prefixPartners)); err != nil {
		return SnapshotMeta{}, fmt.Errorf("drop previous snapshot: %w", err)
	}

	if err := s.writePartners(ctx, ix); err != nil {
		return SnapshotMeta{}, err
	}

	meta := SnapshotMeta{
		CreatedAt: time.Now().UTC(),
		Articles:  ix.Articles(),
		Records:   ix.Records(),
		Source:    source,
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return SnapshotMeta{}, fmt.Errorf("marshal snapshot meta: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(metaKey), data)
	})
	if err != nil {
		return SnapshotMeta{}, fmt.Errorf("write snapshot meta: %w", err)
	}
	return meta, nil
}

func (s *SnapshotStore) writePartners(ctx context.Context, ix *Index) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for id := range ix.partners {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := json.Marshal(ix.Partners(id, 0))
		if err != nil {
			return fmt.Errorf("marshal partners of %d: %w", id, err)
		}
		if err := wb.Set(partnersKey(id), data); err != nil {
			return fmt.Errorf("write partners of %d: %w", id, err)
		}
	}

	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flush snapshot: %w", err)
	}
	return nil
}

// Meta returns the stored snapshot metadata, or ErrDataUnavailable when no
// snapshot has been saved.
func (s *SnapshotStore) Meta(ctx context.Context) (SnapshotMeta, error) {
	var meta SnapshotMeta
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(metaKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &meta)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return SnapshotMeta{}, fmt.Errorf("%w: no snapshot stored", ErrDataUnavailable)
	}
	if err != nil {
		return SnapshotMeta{}, fmt.Errorf("load snapshot meta: %w", err)
	}
	return meta, nil
}

// Load rebuilds an Index from the stored snapshot.
func (s *SnapshotStore) Load(ctx context.Context) (*Index, SnapshotMeta, error) {
	meta, err := s.Meta(ctx)
	if err != nil {
		return nil, SnapshotMeta{}, err
	}

	partners := make(map[int64]map[int64]int64, meta.Articles)
	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixPartners)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			id, err := strconv.ParseInt(strings.TrimPrefix(string(item.Key()), prefixPartners), 10, 64)
			if err != nil {
				return fmt.Errorf("bad snapshot key %q: %w", item.Key(), err)
			}

			var list []Partner
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &list)
			}); err != nil {
				return fmt.Errorf("decode partners of %d: %w", id, err)
			}

			m := make(map[int64]int64, len(list))
			for _, p := range list {
				m[p.ID] = p.Count
			}
			partners[id] = m
		}
		return nil
	})
	if err != nil {
		return nil, SnapshotMeta{}, fmt.Errorf("load snapshot: %w", err)
	}

	return &Index{partners: partners, records: meta.Records}, meta, nil
}

// Partners reads the stored partner list of one article without loading the
// whole snapshot. An article without history yields an empty list.
func (s *SnapshotStore) Partners(ctx context.Context, id int64) ([]Partner, error) {
	var list []Partner
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(partnersKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &list)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("load partners of %d: %w", id, err)
	}
	return list, nil
}
