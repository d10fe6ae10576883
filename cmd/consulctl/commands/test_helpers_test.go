package commands_test

import (
	"bytes"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/consul-client/cmd/consulctl/commands"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// runCLI executes consulctl with args against server, using a config file in
// a temporary directory. viper is global, so callers must not run in
// parallel.
func runCLI(t *testing.T, server *httptest.Server, args ...string) (string, string, error) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	root := commands.NewRootCommand("1.2.3", "abc1234", "2026-01-02", dir)

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	full := append([]string{}, args...)
	full = append(full, "--config", filepath.Join(dir, "config.yml"))

	if server != nil {
		full = append(full, "--address", server.URL)
	}

	root.SetArgs(full)

	err := root.Execute()

	return stdout.String(), stderr.String(), err
}
