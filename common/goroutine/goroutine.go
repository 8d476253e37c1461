package goroutine

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

var (
	running = atomic.NewInt32(0)

	dumpDirMu sync.RWMutex
	dumpDir   = "."
)

// SetDumpDir sets where panic dumps are written. An empty dir means the
// working directory.
func SetDumpDir(dir string) {
	if dir == "" {
		dir = "."
	}
	dumpDirMu.Lock()
	dumpDir = dir
	dumpDirMu.Unlock()
}

// Running reports how many goroutines started by New have not returned.
func Running() int32 {
	return running.Load()
}

// New runs function in a counted goroutine labelled name. A panic inside is
// dumped and re-raised.
func New(name string, function func()) {
	running.Inc()
	go func() {
		defer running.Dec()
		defer DumpStack(name, true)
		function()
	}()
}

// DumpStack must be deferred directly. It recovers a panic, writes the stack
// next to the logs and re-panics when exitIfPanic is set.
func DumpStack(name string, exitIfPanic bool) {
	if err := recover(); err != nil {
		logrus.WithField("goroutine", name).WithField("obj", err).Error("Fatal error occurred. Program will exit")
		path := dump(name, err, debug.Stack())
		logrus.WithField("goroutine", name).WithField("dump", path).Error("stack dumped")
		if exitIfPanic {
			panic(err)
		}
	}
}

func dump(name string, err interface{}, stack []byte) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("Goroutine: %s\nPanic: %v\n", name, err))
	buf.Write(stack)

	dumpDirMu.RLock()
	dir := dumpDir
	dumpDirMu.RUnlock()

	path := filepath.Join(dir, fmt.Sprintf("dump_%s_%s", name, time.Now().Format("20060102-150405")))
	if werr := os.WriteFile(path, buf.Bytes(), 0644); werr != nil {
		fmt.Println("write dump file error", werr)
		fmt.Println(buf.String())
		return ""
	}
	return path
}
