package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/annchain/ogledger/common/io"
	"github.com/annchain/ogledger/common/utilfuncs"
	"github.com/spf13/viper"
)

// readConfig merges {dir.config}/config.toml and an optional injected.toml,
// then lets OGL_ environment variables override.
func readConfig() {
	configDir := io.FixPrefixPath(viper.GetString("dir.root"), viper.GetString("dir.config"))
	configPath := io.FixPrefixPath(configDir, "config.toml")

	if io.FileExists(configPath) {
		mergeLocalConfig(configPath)
	} else {
		fmt.Println("config file not exist, using defaults", configPath)
	}

	// load injected config from deployment tooling if any
	injectedPath := io.FixPrefixPath(configDir, "injected.toml")
	if io.FileExists(injectedPath) {
		mergeLocalConfig(injectedPath)
	}

	mergeEnvConfig()
	// print running config in console.
	b, err := json.MarshalIndent(viper.AllSettings(), "", "    ")
	utilfuncs.PanicIfError(err, "dump json")
	fmt.Println(string(b))
}

func mergeEnvConfig() {
	// env override
	viper.SetEnvPrefix("ogl")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

func mergeLocalConfig(configPath string) {
	absPath, err := filepath.Abs(configPath)
	utilfuncs.PanicIfError(err, fmt.Sprintf("Error on parsing config file path: %s", absPath))

	file, err := os.Open(absPath)
	utilfuncs.PanicIfError(err, fmt.Sprintf("Error on opening config file: %s", absPath))
	defer file.Close()

	viper.SetConfigType("toml")
	err = viper.MergeConfig(file)
	utilfuncs.PanicIfError(err, fmt.Sprintf("Error on reading config file: %s", absPath))
}
