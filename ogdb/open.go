package ogdb

import (
	"fmt"
)

const (
	EngineLevelDB = "leveldb"
	EngineBadger  = "badger"
	EngineMemory  = "memory"
)

type Config struct {
	Engine  string
	Path    string
	Cache   int // MiB, leveldb only
	Handles int // leveldb only
}

// Open creates the database selected by config.Engine. An empty engine means leveldb.
func Open(config Config) (Database, error) {
	switch config.Engine {
	case EngineLevelDB, "":
		return NewLevelDB(config.Path, config.Cache, config.Handles)
	case EngineBadger:
		return NewBadgerDB(config.Path)
	case EngineMemory:
		return NewMemDatabase(), nil
	default:
		return nil, fmt.Errorf("unknown db engine: %s", config.Engine)
	}
}
