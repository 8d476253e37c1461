package ogdb

import (
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/sirupsen/logrus"
)

// BadgerDB keeps the same contract as LevelDB on top of badger. A batch is
// atomic as long as it fits in one badger transaction; larger batches are
// committed in chunks.
type BadgerDB struct {
	dir string
	db  *badger.DB

	quitLock sync.Mutex
	closed   bool
}

func NewBadgerDB(dir string) (*BadgerDB, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Compression = options.Snappy
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	logrus.WithField("path", dir).Info("Opened badger database")
	return &BadgerDB{dir: dir, db: db}, nil
}

func (db *BadgerDB) Put(key []byte, value []byte) error {
	return db.db.Update(func(txn *badger.Txn) error {
		return txn.Set(copyBytes(key), copyBytes(value))
	})
}

func (db *BadgerDB) Has(key []byte) (bool, error) {
	_, err := db.Get(key)
	if err == ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (db *BadgerDB) Get(key []byte) ([]byte, error) {
	var value []byte
	err := db.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (db *BadgerDB) Delete(key []byte) error {
	return db.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(copyBytes(key))
	})
}

func (db *BadgerDB) Close() error {
	db.quitLock.Lock()
	defer db.quitLock.Unlock()

	if db.closed {
		return nil
	}
	db.closed = true
	return db.db.Close()
}

func (db *BadgerDB) NewBatch() Batch {
	return &badgerBatch{db: db.db}
}

type badgerBatch struct {
	db     *badger.DB
	writes []kv
	size   int
}

func (b *badgerBatch) Put(key, value []byte) error {
	b.writes = append(b.writes, kv{copyBytes(key), copyBytes(value), false})
	b.size += len(value)
	return nil
}

func (b *badgerBatch) Delete(key []byte) error {
	b.writes = append(b.writes, kv{copyBytes(key), nil, true})
	b.size++
	return nil
}

// Write commits the batch in one transaction. A batch over badger's
// transaction limits is streamed through a WriteBatch instead, which splits
// it into several commits.
func (b *badgerBatch) Write() error {
	txn := b.db.NewTransaction(true)
	defer txn.Discard()
	for _, w := range b.writes {
		var err error
		if w.del {
			err = txn.Delete(w.k)
		} else {
			err = txn.Set(w.k, w.v)
		}
		if err == badger.ErrTxnTooBig {
			txn.Discard()
			return b.writeChunked()
		}
		if err != nil {
			return err
		}
	}
	return txn.Commit()
}

func (b *badgerBatch) writeChunked() error {
	wb := b.db.NewWriteBatch()
	defer wb.Cancel()
	for _, w := range b.writes {
		var err error
		if w.del {
			err = wb.Delete(w.k)
		} else {
			err = wb.Set(w.k, w.v)
		}
		if err != nil {
			return err
		}
	}
	logrus.WithField("writes", len(b.writes)).WithField("size", b.size).Debug("badger batch split into chunks")
	return wb.Flush()
}

func (b *badgerBatch) ValueSize() int {
	return b.size
}

func (b *badgerBatch) Reset() {
	b.writes = b.writes[:0]
	b.size = 0
}
