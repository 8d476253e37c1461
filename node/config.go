// Copyright © 2019 Annchain Authors <EMAIL ADDRESS>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package node

import (
	"github.com/annchain/ogledger/common/io"
	"github.com/annchain/ogledger/core"
	"github.com/annchain/ogledger/ogdb"
	"github.com/spf13/viper"
)

type NodeConfig struct {
	Database    ogdb.Config
	Chain       core.ChainConfig
	GenesisFile string
	SnapshotDir string
	RpcEnabled  bool
	RpcPort     string
}

// ConfigFromViper reads the node settings. Relative paths live under dir.root.
func ConfigFromViper() NodeConfig {
	root := viper.GetString("dir.root")
	chain := core.DefaultChainConfig()
	if size := viper.GetInt("state.wallet_cache_size"); size > 0 {
		chain.Wallets.CacheSize = size
	}
	if size := viper.GetInt("chain.block_cache_size"); size > 0 {
		chain.Accessor.BlockCacheSize = size
	}
	config := NodeConfig{
		Database: ogdb.Config{
			Engine:  viper.GetString("db.engine"),
			Path:    io.FixPrefixPath(root, viper.GetString("dir.data")),
			Cache:   viper.GetInt("db.cache"),
			Handles: viper.GetInt("db.handles"),
		},
		Chain:       chain,
		SnapshotDir: io.FixPrefixPath(root, viper.GetString("snapshot.dir")),
		RpcEnabled:  viper.GetBool("rpc.enabled"),
		RpcPort:     viper.GetString("rpc.port"),
	}
	if genesis := viper.GetString("genesis.file"); genesis != "" {
		config.GenesisFile = io.FixPrefixPath(root, genesis)
	}
	return config
}
