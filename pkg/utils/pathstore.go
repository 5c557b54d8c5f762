package utils

import (
	"sync"

	"github.com/dgraph-io/badger/v4"
)

// PathStore is a persistent cache of projected SVG path strings keyed by
// ISO country code. Projection is a pure function of the static geometry,
// so entries never expire; the store lets render services skip reprojecting
// the whole geometry table on every cold start. A sync.Map fronts badger so
// repeated lookups within a process never touch disk.
type PathStore struct {
	db    *badger.DB
	cache sync.Map
}

// OpenPathStore opens (or creates) a store at the given directory.
func OpenPathStore(dir string) (*PathStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &PathStore{db: db}, nil
}

func (s *PathStore) Close() error {
	return s.db.Close()
}

// Get returns the cached path for a country code.
func (s *PathStore) Get(code string) (string, bool) {
	if v, ok := s.cache.Load(code); ok {
		return v.(string), true
	}
	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(code))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return "", false
	}
	path := string(val)
	s.cache.Store(code, path)
	return path, true
}

// Put stores the path for a country code.
func (s *PathStore) Put(code, path string) error {
	s.cache.Store(code, path)
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(code), []byte(path))
	})
}

// PutAll stores a batch of paths in one write batch.
func (s *PathStore) PutAll(paths map[string]string) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for code, path := range paths {
		s.cache.Store(code, path)
		if err := wb.Set([]byte(code), []byte(path)); err != nil {
			return err
		}
	}
	return wb.Flush()
}

// ForEach visits every stored path.
func (s *PathStore) ForEach(fn func(code, path string) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			k := item.Key()
			err := item.Value(func(v []byte) error {
				return fn(string(k), string(v))
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}
