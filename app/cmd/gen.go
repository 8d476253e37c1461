package cmd

import (
	"github.com/annchain/ogledger/deployment/config"
	"github.com/spf13/cobra"
)

var genParams config.GenerateParams

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "generate config.toml and genesis files for local nodes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return config.NewGenerator(genParams).Generate()
	},
}

func init() {
	genCmd.Flags().IntVarP(&genParams.Port, "port", "t", 8000, "the rpc port of the first node")
	genCmd.Flags().IntVar(&genParams.NodesNum, "node_num", 1, "the number of nodes to generate")
	genCmd.Flags().StringVarP(&genParams.ConfigDir, "output", "o", "deployment_out", "the folder to write node configs to")
	genCmd.Flags().BoolVar(&genParams.IncreasePort, "increase_port", true, "give every node its own rpc port")
	genCmd.Flags().StringVar(&genParams.DbEngine, "db_engine", "leveldb", "database engine: leveldb, badger or memory")
	genCmd.Flags().StringVar(&genParams.GenesisFile, "genesis", "", "genesis yaml copied to every node")
	rootCmd.AddCommand(genCmd)
}
