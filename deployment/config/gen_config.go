package config

import (
	"fmt"
	"io/ioutil"
	"path"

	"github.com/annchain/ogledger/common/io"
	"github.com/annchain/ogledger/core"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

const GenesisFileName = "genesis.yaml"

type GenerateParams struct {
	Port           int
	ConfigDir      string
	NodesNum       int
	ConfigFileName string
	IncreasePort   bool
	DbEngine       string
	// GenesisFile is copied to every node when set, otherwise the default
	// genesis is written.
	GenesisFile string
}

// Generator writes a config folder per local node, each with its own data
// dir and rpc port and a shared genesis.
type Generator struct {
	GenerateParams
	viper *viper.Viper
}

func NewGenerator(params GenerateParams) *Generator {
	if params.ConfigFileName == "" {
		params.ConfigFileName = "config.toml"
	}
	if params.NodesNum <= 0 {
		params.NodesNum = 1
	}
	return &Generator{GenerateParams: params, viper: viper.New()}
}

func (g *Generator) genesis() ([]byte, error) {
	if g.GenesisFile == "" {
		return yaml.Marshal(core.DefaultGenesis())
	}
	genesis, err := core.LoadGenesis(g.GenesisFile)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(genesis)
}

func (g *Generator) Generate() (err error) {
	genesis, err := g.genesis()
	if err != nil {
		return fmt.Errorf("prepare genesis: %w", err)
	}
	portGap := 0
	if g.IncreasePort {
		portGap = 10
	}
	g.viper.SetConfigType("toml")
	g.viper.Set("db.engine", g.DbEngine)
	g.viper.Set("rpc.enabled", true)
	g.viper.Set("genesis.file", GenesisFileName)
	g.viper.Set("snapshot.dir", "snapshots")
	for i := 0; i < g.NodesNum; i++ {
		g.viper.Set("rpc.port", fmt.Sprintf("%d", g.Port+portGap*i))
		g.viper.Set("dir.data", fmt.Sprintf("rw/datadir_%d", i))

		configDir := path.Join(g.ConfigDir, fmt.Sprintf("node_%d", i))
		err = io.MkDirIfNotExists(configDir)
		if err != nil {
			return fmt.Errorf("check and make dir %s error: %v", configDir, err)
		}
		err = g.viper.WriteConfigAs(path.Join(configDir, g.ConfigFileName))
		if err != nil {
			return fmt.Errorf("error on dump config %v", err)
		}
		err = ioutil.WriteFile(path.Join(configDir, GenesisFileName), genesis, 0644)
		if err != nil {
			return fmt.Errorf("error on dump genesis %v", err)
		}
	}
	return nil
}
