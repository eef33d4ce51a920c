package storage

import (
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

const (
	// Manifest records are a few dozen bytes, so the tables and value log can
	// stay far below badger's defaults.
	ManifestMemTableSize     = 16 << 20
	ManifestValueLogFileSize = 64 << 20
)

// BadgerDatabase implements Database on top of badger. With useWriteBatch set,
// writes made inside Update are collected in a badger.WriteBatch and flushed
// once fn returns. This suits large imports that do not read their own writes.
type BadgerDatabase struct {
	db            *badger.DB
	opts          badger.Options
	useWriteBatch bool
}

func NewBadgerDatabase(opts badger.Options, useWriteBatch bool) *BadgerDatabase {
	return &BadgerDatabase{opts: opts, useWriteBatch: useWriteBatch}
}

func (bdb *BadgerDatabase) Setup() error {
	db, err := badger.Open(bdb.opts)
	if err != nil {
		return errors.Wrapf(err, "BadgerDatabase.Setup: Problem opening badger at %v", bdb.opts.Dir)
	}
	glog.V(1).Infof("BadgerDatabase.Setup: Opened badger (dir=%q, inMemory=%v, writeBatch=%v)",
		bdb.opts.Dir, bdb.opts.InMemory, bdb.useWriteBatch)
	bdb.db = db
	return nil
}

func (bdb *BadgerDatabase) Update(fn func(Transaction) error) error {
	if !bdb.useWriteBatch {
		if err := bdb.db.Update(func(txn *badger.Txn) error {
			return fn(&BadgerTransaction{txn: txn, writer: txn})
		}); err != nil {
			return errors.Wrapf(err, "BadgerDatabase.Update:")
		}
		return nil
	}

	wb := bdb.db.NewWriteBatch()
	defer wb.Cancel()
	if err := bdb.db.View(func(txn *badger.Txn) error {
		return fn(&BadgerTransaction{txn: txn, writer: wb})
	}); err != nil {
		return errors.Wrapf(err, "BadgerDatabase.Update:")
	}
	if err := wb.Flush(); err != nil {
		return errors.Wrapf(err, "BadgerDatabase.Update: Problem flushing write batch")
	}
	return nil
}

func (bdb *BadgerDatabase) View(fn func(Transaction) error) error {
	return bdb.db.View(func(txn *badger.Txn) error {
		return fn(&BadgerTransaction{txn: txn})
	})
}

func (bdb *BadgerDatabase) Close() error {
	return bdb.db.Close()
}

// Erase removes the database directory. It does nothing for in-memory options.
func (bdb *BadgerDatabase) Erase() error {
	if bdb.opts.InMemory || bdb.opts.Dir == "" {
		return nil
	}
	return os.RemoveAll(bdb.opts.Dir)
}

// badgerWriter is satisfied by both *badger.Txn and *badger.WriteBatch.
type badgerWriter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// BadgerTransaction reads through txn and writes through writer. writer is nil
// for read-only transactions.
type BadgerTransaction struct {
	txn    *badger.Txn
	writer badgerWriter
}

func (btx *BadgerTransaction) Set(key []byte, value []byte) error {
	if btx.writer == nil {
		return badger.ErrReadOnlyTxn
	}
	return btx.writer.Set(key, value)
}

func (btx *BadgerTransaction) Delete(key []byte) error {
	if btx.writer == nil {
		return badger.ErrReadOnlyTxn
	}
	return btx.writer.Delete(key)
}

func (btx *BadgerTransaction) Get(key []byte) ([]byte, error) {
	item, err := btx.txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "BadgerTransaction.Get: Problem reading key %x", key)
	}
	return item.ValueCopy(nil)
}

func (btx *BadgerTransaction) GetIterator(prefix []byte) (Iterator, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	return &BadgerIterator{it: btx.txn.NewIterator(opts), prefix: prefix}, nil
}

// BadgerIterator seeks to its prefix on the first call to Next.
type BadgerIterator struct {
	it      *badger.Iterator
	prefix  []byte
	started bool
}

func (bit *BadgerIterator) Value() ([]byte, error) {
	return bit.it.Item().ValueCopy(nil)
}

func (bit *BadgerIterator) Key() []byte {
	return bit.it.Item().KeyCopy(nil)
}

func (bit *BadgerIterator) Next() bool {
	if bit.started {
		bit.it.Next()
	} else {
		bit.it.Seek(bit.prefix)
		bit.started = true
	}
	return bit.it.ValidForPrefix(bit.prefix)
}

func (bit *BadgerIterator) Close() {
	bit.it.Close()
}

// DefaultBadgerOptions opens dir with tables sized for manifest records and
// badger's own logging turned off; errors surface through glog instead.
func DefaultBadgerOptions(dir string) badger.Options {
	return badger.DefaultOptions(dir).
		WithMemTableSize(ManifestMemTableSize).
		WithValueLogFileSize(ManifestValueLogFileSize).
		WithLogger(nil)
}

func InMemoryBadgerOptions() badger.Options {
	return badger.DefaultOptions("").
		WithInMemory(true).
		WithMemTableSize(ManifestMemTableSize).
		WithLogger(nil)
}
