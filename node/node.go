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
	"fmt"

	"github.com/annchain/ogledger/common/io"
	"github.com/annchain/ogledger/core"
	"github.com/annchain/ogledger/core/snapshot"
	"github.com/annchain/ogledger/core/transactions"
	"github.com/annchain/ogledger/ogdb"
	"github.com/annchain/ogledger/rpc"
	"github.com/sirupsen/logrus"
)

type Component interface {
	Start()
	Stop()
	Name() string
}

// Node is the basic entrypoint for all modules to start.
// It also tells the rollback service which services are bound.
type Node struct {
	Config     NodeConfig
	Database   ogdb.Database
	Chain      *core.Chain
	Components []Component
}

func NewNode(config NodeConfig) (*Node, error) {
	db, err := ogdb.Open(config.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	n := &Node{Config: config, Database: db}
	if err := n.initChain(); err != nil {
		db.Close()
		return nil, err
	}
	// Order matters.
	if config.RpcEnabled {
		n.Components = append(n.Components, rpc.NewRpcServer(config.RpcPort, &rpc.RpcController{Chain: n.Chain}))
	}
	return n, nil
}

func (n *Node) initChain() error {
	genesis := core.DefaultGenesis()
	if n.Config.GenesisFile != "" {
		var err error
		if genesis, err = core.LoadGenesis(n.Config.GenesisFile); err != nil {
			return fmt.Errorf("load genesis: %w", err)
		}
	}
	chain, err := core.NewChain(n.Database, transactions.DefaultRegistry(), n.Config.Chain)
	if err != nil {
		return err
	}
	if err := chain.Init(genesis); err != nil {
		return fmt.Errorf("init chain: %w", err)
	}
	n.Chain = chain
	return nil
}

// DatabaseReady reports whether the database is open and the chain has a tip.
func (n *Node) DatabaseReady() bool {
	if n.Database == nil || n.Chain == nil {
		return false
	}
	_, err := n.Chain.CurrentHeight()
	return err == nil
}

// SnapshotReady reports whether the export directory is usable.
func (n *Node) SnapshotReady() bool {
	if n.Config.SnapshotDir == "" {
		return false
	}
	if err := io.MkDirIfNotExists(n.Config.SnapshotDir); err != nil {
		logrus.WithError(err).WithField("dir", n.Config.SnapshotDir).Warn("snapshot dir unusable")
		return false
	}
	return true
}

// RollbackService binds a rollback service to this node.
func (n *Node) RollbackService(skipCompression bool) *snapshot.RollbackService {
	return snapshot.NewRollbackService(n.Chain, n, snapshot.NewFileExporter(n.Config.SnapshotDir, skipCompression))
}

func (n *Node) Start() {
	for _, component := range n.Components {
		logrus.Infof("Starting %s", component.Name())
		component.Start()
		logrus.Infof("Started: %s", component.Name())
	}
	logrus.Info("Node Started")
}

func (n *Node) Stop() {
	for i := len(n.Components) - 1; i >= 0; i-- {
		comp := n.Components[i]
		logrus.Infof("Stopping %s", comp.Name())
		comp.Stop()
		logrus.Infof("Stopped: %s", comp.Name())
	}
	n.Close()
	logrus.Info("Node Stopped")
}

// Close releases the database. Stop calls it.
func (n *Node) Close() {
	if n.Database != nil {
		n.Database.Close()
		n.Database = nil
	}
}
