package storage

import "github.com/deso-protocol/go-deadlock"

// LockedDatabase serializes writers on an underlying Database while letting
// readers run concurrently. The lock comes from go-deadlock, which reports
// lock-order inversions and waits that exceed its timeout.
type LockedDatabase struct {
	deadlock.RWMutex

	Db Database
}

func NewLockedDatabase(db Database) *LockedDatabase {
	return &LockedDatabase{Db: db}
}

func (ldb *LockedDatabase) Setup() error {
	ldb.Lock()
	defer ldb.Unlock()

	return ldb.Db.Setup()
}

func (ldb *LockedDatabase) Update(f func(Transaction) error) error {
	ldb.Lock()
	defer ldb.Unlock()

	return ldb.Db.Update(f)
}

func (ldb *LockedDatabase) View(f func(Transaction) error) error {
	ldb.RLock()
	defer ldb.RUnlock()

	return ldb.Db.View(f)
}

func (ldb *LockedDatabase) Close() error {
	ldb.Lock()
	defer ldb.Unlock()

	return ldb.Db.Close()
}

func (ldb *LockedDatabase) Erase() error {
	ldb.Lock()
	defer ldb.Unlock()

	return ldb.Db.Erase()
}
