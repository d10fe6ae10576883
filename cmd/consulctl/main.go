package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fivetwenty-io/consul-client/cmd/consulctl/commands"
	"github.com/fivetwenty-io/consul-client/internal/constants"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := commands.NewRootCommand(version, commit, date, defaultConfigDir())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func defaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	dir := filepath.Join(home, ".consulctl")
	if err := os.MkdirAll(dir, constants.ConfigDirPerm); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating config directory: %v\n", err)
	}

	return dir
}
