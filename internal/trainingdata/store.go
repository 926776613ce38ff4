package trainingdata

import (
	"encoding/binary"

	badger "github.com/dgraph-io/badger/v4"
)

// Store persists position records keyed by Zobrist hash in a badger
// database directory, so records accumulate across runs that reopen the
// same directory. No command in this repository opens a Store.
type Store struct {
	db *badger.DB
}

// Open opens (creating if absent) a badger store rooted at dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error { return s.db.Close() }

func key(zobrist uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], zobrist)
	return b[:]
}

// Put stores fen's evaluation under zobrist, overwriting any prior
// record for the same hash.
func (s *Store) Put(zobrist uint64, fen string, eval int16) error {
	buf := make([]byte, 2+len(fen))
	binary.BigEndian.PutUint16(buf[:2], uint16(eval))
	copy(buf[2:], fen)
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(zobrist), buf)
	})
}

// Get retrieves the record stored for zobrist, if any.
func (s *Store) Get(zobrist uint64) (fen string, eval int16, ok bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, getErr := txn.Get(key(zobrist))
		if getErr == badger.ErrKeyNotFound {
			return nil
		}
		if getErr != nil {
			return getErr
		}
		ok = true
		return item.Value(func(val []byte) error {
			if len(val) < 2 {
				return nil
			}
			eval = int16(binary.BigEndian.Uint16(val[:2]))
			fen = string(val[2:])
			return nil
		})
	})
	return fen, eval, ok, err
}

// Count returns the number of records currently stored.
func (s *Store) Count() (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}
