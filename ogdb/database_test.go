package ogdb_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/annchain/ogledger/ogdb"
	"github.com/stretchr/testify/require"
)

func newTestLDB(t *testing.T) *ogdb.LevelDB {
	db, err := ogdb.NewLevelDB(t.TempDir(), 0, 0)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestBadger(t *testing.T) *ogdb.BadgerDB {
	db, err := ogdb.NewBadgerDB("")
	if err != nil {
		t.Fatalf("failed to create badger database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func engines(t *testing.T) map[string]ogdb.Database {
	return map[string]ogdb.Database{
		"memory":  ogdb.NewMemDatabase(),
		"leveldb": newTestLDB(t),
		"badger":  newTestBadger(t),
	}
}

func TestDatabase_PutGetDelete(t *testing.T) {
	for name, db := range engines(t) {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			_, err := db.Get([]byte("missing"))
			require.Equal(ogdb.ErrNotFound, err)

			require.NoError(db.Put([]byte("k"), []byte("v1")))
			v, err := db.Get([]byte("k"))
			require.NoError(err)
			require.Equal([]byte("v1"), v)

			has, err := db.Has([]byte("k"))
			require.NoError(err)
			require.True(has)

			require.NoError(db.Delete([]byte("k")))
			has, err = db.Has([]byte("k"))
			require.NoError(err)
			require.False(has)
		})
	}
}

func TestDatabase_BatchIsAppliedOnWriteOnly(t *testing.T) {
	for name, db := range engines(t) {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			require.NoError(db.Put([]byte("old"), []byte("x")))

			batch := db.NewBatch()
			require.NoError(batch.Put([]byte("a"), []byte("1")))
			require.NoError(batch.Put([]byte("b"), []byte("22")))
			require.NoError(batch.Delete([]byte("old")))
			require.Equal(4, batch.ValueSize())

			has, _ := db.Has([]byte("a"))
			require.False(has, "batch leaked before Write")

			require.NoError(batch.Write())
			v, err := db.Get([]byte("b"))
			require.NoError(err)
			require.Equal([]byte("22"), v)
			has, _ = db.Has([]byte("old"))
			require.False(has)

			batch.Reset()
			require.Equal(0, batch.ValueSize())
		})
	}
}

func TestDatabase_OversizedBatch(t *testing.T) {
	// 20MB of inline values is past badger's per-transaction limit
	value := bytes.Repeat([]byte{0xab}, 100<<10)
	for name, db := range engines(t) {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			for i := 0; i < 1000; i++ {
				require.NoError(db.Put([]byte(fmt.Sprintf("stale-%d", i)), []byte{1}))
			}

			batch := db.NewBatch()
			for i := 0; i < 1000; i++ {
				require.NoError(batch.Delete([]byte(fmt.Sprintf("stale-%d", i))))
			}
			for i := 0; i < 200; i++ {
				require.NoError(batch.Put([]byte(fmt.Sprintf("blob-%d", i)), value))
			}
			require.NoError(batch.Write())

			for i := 0; i < 1000; i += 97 {
				has, err := db.Has([]byte(fmt.Sprintf("stale-%d", i)))
				require.NoError(err)
				require.False(has)
			}
			for i := 0; i < 200; i += 13 {
				v, err := db.Get([]byte(fmt.Sprintf("blob-%d", i)))
				require.NoError(err)
				require.Equal(value, v)
			}
		})
	}
}

func TestOpen_UnknownEngine(t *testing.T) {
	_, err := ogdb.Open(ogdb.Config{Engine: "rocks"})
	require.Error(t, err)

	db, err := ogdb.Open(ogdb.Config{Engine: ogdb.EngineMemory})
	require.NoError(t, err)
	require.IsType(t, &ogdb.MemDatabase{}, db)
}
