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
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/annchain/ogledger/core/snapshot"
	"github.com/annchain/ogledger/node"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// rollbackCmd reverts the trailing blocks of the local chain. The node must
// not be running.
var rollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "Roll the chain back to a height or by a number of blocks",
	Long: `Roll the chain back to --height or by --number blocks.
Removed transactions are exported to the snapshot dir unless --export=false.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		readConfig()
		initLogger()
		initAuditLogger()

		req, err := rollbackRequest(cmd)
		if err != nil {
			return err
		}
		skip, err := cmd.Flags().GetBool("skip-compression")
		if err != nil {
			return err
		}

		config := node.ConfigFromViper()
		config.RpcEnabled = false
		n, err := node.NewNode(config)
		if err != nil {
			return err
		}
		defer n.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := n.RollbackService(skip).Rollback(ctx, req); err != nil {
			return err
		}
		height, err := n.Chain.CurrentHeight()
		if err != nil {
			return err
		}
		log.WithField("height", height).Info("chain rolled back")
		return nil
	},
}

// rollbackRequest builds the request from the flags the user set. Height wins
// over number; with neither the service reports a missing target.
func rollbackRequest(cmd *cobra.Command) (snapshot.Request, error) {
	flags := cmd.Flags()
	req := snapshot.Request{}
	var err error
	if req.Export, err = flags.GetBool("export"); err != nil {
		return req, err
	}
	if flags.Changed("height") {
		height, err := flags.GetUint64("height")
		if err != nil {
			return req, err
		}
		req.Height = &height
	}
	if flags.Changed("number") {
		number, err := flags.GetUint64("number")
		if err != nil {
			return req, err
		}
		req.Count = &number
	}
	return req, nil
}

func init() {
	rollbackCmd.Flags().Uint64("height", 0, "Target height to roll back to")
	rollbackCmd.Flags().Uint64("number", 0, "Number of blocks to roll back")
	rollbackCmd.Flags().Bool("export", true, "Export removed transactions to the snapshot dir")
	rollbackCmd.Flags().Bool("skip-compression", false, "Write the export without snappy compression")
	rootCmd.AddCommand(rollbackCmd)
}
