// Package storage is the key-value layer under the digest manifest.
package storage

import "github.com/pkg/errors"

// ErrKeyNotFound is returned by Transaction.Get when the key has no value.
var ErrKeyNotFound = errors.New("storage: key not found")

// Database is an ordered key-value store driven through callbacks. Update gives
// fn a read-write Transaction and commits it when fn returns nil. View gives fn a
// read-only one. Setup must be called before either, Close after the last.
// Erase drops everything the database persisted.
type Database interface {
	Setup() error
	Update(fn func(Transaction) error) error
	View(fn func(Transaction) error) error
	Close() error
	Erase() error
}

// Transaction is only valid inside the callback it was handed to.
type Transaction interface {
	Set(key []byte, value []byte) error
	Delete(key []byte) error
	// Get returns a copy of the value, or ErrKeyNotFound.
	Get(key []byte) ([]byte, error)
	// GetIterator walks the keys starting with prefix in ascending byte order.
	GetIterator(prefix []byte) (Iterator, error)
}

// Iterator starts before the first key, so the usual loop is
//
//	defer it.Close()
//	for it.Next() {
//		key := it.Key()
//		value, err := it.Value()
//	}
//
// Key and Value return copies that stay valid after Next.
type Iterator interface {
	Value() ([]byte, error)
	Key() []byte
	Next() bool
	Close()
}
