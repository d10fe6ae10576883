package commands

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/consul-client/internal/constants"
)

// Config represents the CLI configuration.
type Config struct {
	Address            string `json:"address,omitempty"              yaml:"address,omitempty"`
	Token              string `json:"token,omitempty"                yaml:"token,omitempty"`
	Datacenter         string `json:"datacenter,omitempty"           yaml:"datacenter,omitempty"`
	Namespace          string `json:"namespace,omitempty"            yaml:"namespace,omitempty"`
	Output             string `json:"output,omitempty"               yaml:"output,omitempty"`
	CACert             string `json:"ca_cert,omitempty"              yaml:"ca_cert,omitempty"`
	ClientCert         string `json:"client_cert,omitempty"          yaml:"client_cert,omitempty"`
	ClientKey          string `json:"client_key,omitempty"           yaml:"client_key,omitempty"`
	TLSServerName      string `json:"tls_server_name,omitempty"      yaml:"tls_server_name,omitempty"`
	InsecureSkipVerify bool   `json:"insecure_skip_verify,omitempty" yaml:"insecure_skip_verify,omitempty"`
}

func (c *Config) hasTLS() bool {
	return c.CACert != "" || c.ClientCert != "" || c.ClientKey != "" ||
		c.TLSServerName != "" || c.InsecureSkipVerify
}

// configKeys maps each settable key to its setter.
var configKeys = map[string]func(*Config, string) error{
	"address":    func(c *Config, v string) error { c.Address = v; return nil },
	"token":      func(c *Config, v string) error { c.Token = v; return nil },
	"datacenter": func(c *Config, v string) error { c.Datacenter = v; return nil },
	"namespace":  func(c *Config, v string) error { c.Namespace = v; return nil },
	"output": func(c *Config, v string) error {
		switch v {
		case constants.FormatTable, constants.FormatJSON, constants.FormatYAML, "":
			c.Output = v

			return nil
		default:
			return constants.ErrInvalidOutputFormat
		}
	},
	"ca_cert":         func(c *Config, v string) error { c.CACert = v; return nil },
	"client_cert":     func(c *Config, v string) error { c.ClientCert = v; return nil },
	"client_key":      func(c *Config, v string) error { c.ClientKey = v; return nil },
	"tls_server_name": func(c *Config, v string) error { c.TLSServerName = v; return nil },
	"insecure_skip_verify": func(c *Config, v string) error {
		if v == "" {
			c.InsecureSkipVerify = false

			return nil
		}

		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("insecure_skip_verify: %w", err)
		}

		c.InsecureSkipVerify = b

		return nil
	},
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the consulctl configuration file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())
	cmd.AddCommand(newConfigSetTokenCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration with the token masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			if config.Token != "" {
				config.Token = constants.MaskedSecret
			}

			return outputResult(cmd, config, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append([]string{"Address", formatValue(config.Address)})
				_ = table.Append([]string{"Token", formatValue(config.Token)})
				_ = table.Append([]string{"Datacenter", formatValue(config.Datacenter)})
				_ = table.Append([]string{"Namespace", formatValue(config.Namespace)})
				_ = table.Append([]string{"Output", formatValue(config.Output)})
				_ = table.Append([]string{"CA Cert", formatValue(config.CACert)})
				_ = table.Append([]string{"Client Cert", formatValue(config.ClientCert)})
				_ = table.Append([]string{"TLS Server Name", formatValue(config.TLSServerName)})
				_ = table.Append([]string{"Insecure Skip Verify", strconv.FormatBool(config.InsecureSkipVerify)})
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value: " + strings.Join(sortedKeys(configKeys), ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(cmd, args[0], args[1])
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value from the configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(cmd, args[0], "")
		},
	}
}

func newConfigSetTokenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-token",
		Short: "Store an ACL token",
		Long:  "Read an ACL token without echoing it and store it in the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := readToken(cmd)
			if err != nil {
				return err
			}

			if token == "" {
				return constants.ErrTokenNotProvided
			}

			return updateConfig(cmd, "token", token)
		},
	}
}

func readToken(cmd *cobra.Command) (string, error) {
	if file, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Token: ")

		secret, err := term.ReadPassword(int(file.Fd()))

		_, _ = fmt.Fprintln(cmd.ErrOrStderr())

		if err != nil {
			return "", fmt.Errorf("failed to read token: %w", err)
		}

		return strings.TrimSpace(string(secret)), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", constants.ErrTokenNotProvided
	}

	return strings.TrimSpace(line), nil
}

func updateConfig(cmd *cobra.Command, key, value string) error {
	setter, ok := configKeys[key]
	if !ok {
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	config := loadFileConfig()

	err := setter(config, value)
	if err != nil {
		return err
	}

	path, err := saveConfig(config)
	if err != nil {
		return err
	}

	if value == "" {
		printSuccess(cmd, "Unset %s in %s", key, path)
	} else {
		printSuccess(cmd, "Set %s in %s", key, path)
	}

	return nil
}

// loadConfig returns the effective configuration: flags, then environment,
// then the configuration file.
func loadConfig() *Config {
	return &Config{
		Address:            viper.GetString("address"),
		Token:              viper.GetString("token"),
		Datacenter:         viper.GetString("datacenter"),
		Namespace:          viper.GetString("namespace"),
		Output:             viper.GetString("output"),
		CACert:             viper.GetString("ca_cert"),
		ClientCert:         viper.GetString("client_cert"),
		ClientKey:          viper.GetString("client_key"),
		TLSServerName:      viper.GetString("tls_server_name"),
		InsecureSkipVerify: viper.GetBool("insecure_skip_verify"),
	}
}

// loadFileConfig returns only what the configuration file holds, so saving
// never persists flag or environment values.
func loadFileConfig() *Config {
	config := &Config{}

	path := configFilePath()
	if path == "" {
		return config
	}

	// #nosec G304 -- path is the consulctl configuration file
	data, err := os.ReadFile(path)
	if err != nil {
		return config
	}

	_ = yaml.Unmarshal(data, config)

	return config
}

func configFilePath() string {
	if file := viper.ConfigFileUsed(); file != "" {
		return file
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".consulctl", "config.yml")
}

func saveConfig(config *Config) (string, error) {
	path := configFilePath()
	if path == "" {
		return "", fmt.Errorf("failed to locate configuration file: %w", os.ErrNotExist)
	}

	err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}
