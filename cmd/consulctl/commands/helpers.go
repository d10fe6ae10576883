package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/consul-client/internal/constants"
	"github.com/fivetwenty-io/consul-client/pkg/consul"
	"github.com/fivetwenty-io/consul-client/pkg/consulclient"
)

// Common static errors used throughout the commands package.
var (
	ErrKVWriteRejected   = errors.New("write was rejected (check-and-set or lock mismatch)")
	ErrKVDeleteRejected  = errors.New("delete was rejected (check-and-set mismatch)")
	ErrSessionNotFound   = errors.New("session not found")
	ErrServiceNameNeeded = errors.New("service name is required (--name or --file)")
	ErrConflictingFlags  = errors.New("flags cannot be combined")
)

const defaultJSONIndent = 2

// createClient builds a Consul client from the merged flag, environment and
// config file settings.
func createClient(cmd *cobra.Command) (consul.Client, error) {
	return createClientWithTimeout(cmd, viper.GetDuration("timeout"))
}

// createClientWithTimeout is createClient with an explicit HTTP timeout.
// Blocking commands pass zero.
func createClientWithTimeout(cmd *cobra.Command, timeout time.Duration) (consul.Client, error) {
	config := loadConfig()

	if config.Address == "" {
		return nil, constants.ErrNoAddressConfigured
	}

	clientConfig := &consul.Config{
		Address:     config.Address,
		Token:       config.Token,
		Datacenter:  config.Datacenter,
		Namespace:   config.Namespace,
		HTTPTimeout: timeout,
	}

	if config.hasTLS() {
		clientConfig.TLS = &consul.TLSConfig{
			CACert:             config.CACert,
			ClientCert:         config.ClientCert,
			ClientKey:          config.ClientKey,
			ServerName:         config.TLSServerName,
			InsecureSkipVerify: config.InsecureSkipVerify,
		}
	}

	if viper.GetBool("verbose") {
		clientConfig.Logger = &writerLogger{w: cmd.ErrOrStderr()}
		clientConfig.Debug = true
	}

	client, err := consulclient.New(clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// queryFlags are the read options shared by every query command.
type queryFlags struct {
	consistency string
	filter      string
	near        string
	cached      bool
}

func addQueryFlags(cmd *cobra.Command, flags *queryFlags) {
	cmd.Flags().StringVar(&flags.consistency, "consistency", "", "read consistency (default, stale, leader)")
	cmd.Flags().StringVar(&flags.filter, "filter", "", "server-side filter expression")
	cmd.Flags().StringVar(&flags.near, "near", "", "sort results by round trip time from this node")
	cmd.Flags().BoolVar(&flags.cached, "cached", false, "allow the agent to answer from its cache")
}

func (f *queryFlags) options() (consul.QueryOptions, error) {
	mode, err := consul.ParseConsistencyMode(f.consistency)
	if err != nil {
		return consul.QueryOptions{}, err
	}

	return consul.QueryOptions{
		Consistency: mode,
		Filter:      f.filter,
		Near:        f.near,
		Cached:      f.cached,
	}, nil
}

// outputResult writes value as JSON or YAML, or calls table for the default
// table format.
func outputResult(cmd *cobra.Command, value any, table func(*tablewriter.Table)) error {
	out := cmd.OutOrStdout()

	switch viper.GetString("output") {
	case constants.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", strings.Repeat(" ", defaultJSONIndent))

		return encoder.Encode(value)
	case constants.FormatYAML:
		return encodeYAML(out, value)
	case constants.FormatTable, "":
		t := tablewriter.NewWriter(out)
		table(t)

		err := t.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	default:
		return constants.ErrInvalidOutputFormat
	}
}

// encodeYAML goes through JSON first so YAML keys match the API field names.
func encodeYAML(out io.Writer, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	var generic any

	err = json.Unmarshal(data, &generic)
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	encoder := yaml.NewEncoder(out)
	defer func() { _ = encoder.Close() }()

	return encoder.Encode(generic)
}

func printSuccess(cmd *cobra.Command, format string, args ...any) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
}

func formatValue(value string) string {
	if value == "" {
		return "-"
	}

	return value
}

func formatTags(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}

	return strings.Join(tags, ",")
}

func formatMeta(meta map[string]string) string {
	if len(meta) == 0 {
		return "-"
	}

	keys := sortedKeys(meta)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+meta[k])
	}

	return strings.Join(pairs, ",")
}

func formatStatus(status string) string {
	if status == "" {
		return constants.NotAvailable
	}

	return cases.Title(language.English).String(status)
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "-"
	}

	return d.String()
}

// parseKeyValues parses repeated key=value flags.
func parseKeyValues(values []string) (map[string]string, error) {
	if len(values) == 0 {
		return nil, nil
	}

	out := make(map[string]string, len(values))

	for _, kv := range values {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidKeyValueFlag, kv)
		}

		out[key] = value
	}

	return out, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// readInput reads path, or standard input when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read standard input: %w", err)
		}

		return data, nil
	}

	// #nosec G304 -- path is supplied by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return data, nil
}

// writerLogger prints client log lines for --verbose.
type writerLogger struct {
	w io.Writer
}

func (l *writerLogger) log(level, msg string, fields map[string]interface{}) {
	keys := sortedKeys(fields)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}

	_, _ = fmt.Fprintf(l.w, "[%s] %s %s\n", level, msg, strings.Join(parts, " "))
}

func (l *writerLogger) Debug(msg string, fields map[string]interface{}) { l.log("DEBUG", msg, fields) }
func (l *writerLogger) Info(msg string, fields map[string]interface{})  { l.log("INFO", msg, fields) }
func (l *writerLogger) Warn(msg string, fields map[string]interface{})  { l.log("WARN", msg, fields) }
func (l *writerLogger) Error(msg string, fields map[string]interface{}) { l.log("ERROR", msg, fields) }
