package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/consul-client/internal/constants"
)

// NewRootCommand creates the consulctl command tree. configDir is searched
// for config.yml unless --config names a file.
func NewRootCommand(version, commit, date, configDir string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "consulctl",
		Short: "Consul HTTP API CLI",
		Long: `A command-line interface for the Consul HTTP API.

It covers the key/value store, catalog, health, agent services and checks,
sessions and snapshots. Settings are read from flags, then CONSUL_*
environment variables, then ~/.consulctl/config.yml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd.ErrOrStderr(), configDir)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.consulctl/config.yml)")
	flags.StringP("address", "a", "", "Consul agent address (default "+constants.DefaultAddress+")")
	flags.StringP("token", "t", "", "ACL token")
	flags.String("datacenter", "", "datacenter to query (defaults to the agent's)")
	flags.String("namespace", "", "namespace to query (Enterprise)")
	flags.String("output", constants.FormatTable, "output format (table, json, yaml)")
	flags.Duration("timeout", constants.DefaultHTTPTimeout, "HTTP timeout, 0 to disable")
	flags.BoolP("verbose", "v", false, "log every request to standard error")

	for _, name := range []string{"config", "address", "token", "datacenter", "namespace", "output", "timeout", "verbose"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.AddCommand(NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewAgentCommand())
	rootCmd.AddCommand(NewKVCommand())
	rootCmd.AddCommand(NewCatalogCommand())
	rootCmd.AddCommand(NewHealthCommand())
	rootCmd.AddCommand(NewServicesCommand())
	rootCmd.AddCommand(NewChecksCommand())
	rootCmd.AddCommand(NewSessionsCommand())
	rootCmd.AddCommand(NewSnapshotCommand())

	return rootCmd
}

// initConfig wires the config file and environment into viper.
func initConfig(stderr io.Writer, configDir string) error {
	cfgFile := viper.GetString("config")

	switch {
	case cfgFile != "":
		viper.SetConfigFile(cfgFile)
	case configDir != "":
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	viper.SetDefault("address", constants.DefaultAddress)

	// Read in environment variables that match, using the names the consul
	// binary understands where they exist.
	viper.SetEnvPrefix("CONSUL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	envNames := map[string]string{
		"address":         constants.EnvHTTPAddr,
		"token":           constants.EnvHTTPToken,
		"ca_cert":         constants.EnvCACert,
		"client_cert":     constants.EnvClientCert,
		"client_key":      constants.EnvClientKey,
		"tls_server_name": constants.EnvTLSServerName,
	}

	for key, env := range envNames {
		_ = viper.BindEnv(key, env)
	}

	// A missing file is fine: config set creates it.
	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	} else if viper.GetBool("verbose") {
		_, _ = fmt.Fprintln(stderr, "Using config file:", viper.ConfigFileUsed())
	}

	return nil
}
