package snapshot

import (
	"bufio"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	ogio "github.com/annchain/ogledger/common/io"
	"github.com/annchain/ogledger/types"
	"github.com/golang/snappy"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// FileExporter buffers removed txs and writes them on Flush as concatenated
// msgp records, snappy framed unless SkipCompression is set. The file is
// written under a temp name and renamed so a partial export is never visible.
type FileExporter struct {
	Dir             string
	SkipCompression bool

	records  []byte
	count    int
	from, to uint64
	lastFile string
}

func NewFileExporter(dir string, skipCompression bool) *FileExporter {
	return &FileExporter{Dir: dir, SkipCompression: skipCompression}
}

// Export buffers tx. A failed encode drops everything buffered since the
// last Flush, as the run it belongs to is aborted.
func (e *FileExporter) Export(tx *types.Transaction) error {
	records, err := tx.MarshalMsg(e.records)
	if err != nil {
		e.reset()
		return err
	}
	e.records = records
	if e.count == 0 || tx.BlockHeight < e.from {
		e.from = tx.BlockHeight
	}
	if tx.BlockHeight > e.to {
		e.to = tx.BlockHeight
	}
	e.count++
	return nil
}

func (e *FileExporter) Flush() error {
	defer e.reset()
	if e.count == 0 {
		logrus.Debug("nothing to export")
		return nil
	}
	if err := ogio.MkDirIfNotExists(e.Dir); err != nil {
		return err
	}
	name := fmt.Sprintf("rollback-%d-%d-%s.txs", e.from, e.to, uuid.New().String())
	path := filepath.Join(e.Dir, name)
	tmp := path + ".tmp"
	if err := e.write(tmp); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	e.lastFile = path
	logrus.WithField("file", path).WithField("txs", e.count).Info("exported rolled back txs")
	return nil
}

func (e *FileExporter) write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if e.SkipCompression {
		w := bufio.NewWriter(f)
		if _, err := w.Write(e.records); err != nil {
			return err
		}
		if err := w.Flush(); err != nil {
			return err
		}
	} else {
		w := snappy.NewBufferedWriter(f)
		if _, err := w.Write(e.records); err != nil {
			return err
		}
		if err := w.Close(); err != nil {
			return err
		}
	}
	return f.Sync()
}

func (e *FileExporter) reset() {
	e.records = e.records[:0]
	e.count = 0
	e.from, e.to = 0, 0
}

// LastFile is the path of the most recent export, empty if none.
func (e *FileExporter) LastFile() string {
	return e.lastFile
}

// ReadExport loads the txs of an export file.
func ReadExport(path string, compressed bool) ([]*types.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if compressed {
		r = snappy.NewReader(f)
	}
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var txs []*types.Transaction
	for len(data) > 0 {
		tx := &types.Transaction{}
		if data, err = tx.UnmarshalMsg(data); err != nil {
			return nil, fmt.Errorf("record %d: %w", len(txs), err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// NopExporter drops everything.
type NopExporter struct{}

func (NopExporter) Export(*types.Transaction) error { return nil }
func (NopExporter) Flush() error                    { return nil }
