package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/consul-client/pkg/consul"
	"github.com/fivetwenty-io/consul-client/pkg/watch"
)

// NewKVCommand creates the kv command group.
func NewKVCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kv",
		Short: "Manage the key/value store",
		Long:  "Read, write, delete and watch keys in the Consul key/value store",
	}

	cmd.AddCommand(newKVGetCommand())
	cmd.AddCommand(newKVPutCommand())
	cmd.AddCommand(newKVDeleteCommand())
	cmd.AddCommand(newKVKeysCommand())
	cmd.AddCommand(newKVWatchCommand())

	return cmd
}

func newKVGetCommand() *cobra.Command {
	var (
		recurse   bool
		raw       bool
		separator string
		query     queryFlags
	)

	cmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Read a key",
		Long:  "Read a key, or every key under a prefix with --recurse",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := ""
			if len(args) > 0 {
				key = args[0]
			}

			if raw && recurse {
				return fmt.Errorf("--raw and --recurse: %w", ErrConflictingFlags)
			}

			opts, err := query.options()
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			req := &consul.KVReadRequest{QueryOptions: opts, Key: key, Recurse: recurse, Separator: separator}

			if raw {
				resp, err := client.KV().ReadRaw(cmd.Context(), req)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", key, err)
				}

				_, err = cmd.OutOrStdout().Write(resp.Payload)

				return err
			}

			resp, err := client.KV().Read(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", key, err)
			}

			return outputResult(cmd, resp.Payload, func(table *tablewriter.Table) {
				table.Header("Key", "Value", "Flags", "Modify Index", "Session")

				for _, pair := range resp.Payload {
					_ = table.Append([]string{
						pair.Key,
						string(pair.Value),
						strconv.FormatUint(pair.Flags, 10),
						strconv.FormatUint(pair.ModifyIndex, 10),
						formatValue(pair.Session),
					})
				}
			})
		},
	}

	cmd.Flags().BoolVarP(&recurse, "recurse", "r", false, "read every key under the prefix")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the raw value only")
	cmd.Flags().StringVar(&separator, "separator", "", "stop a recursive read at this separator")
	addQueryFlags(cmd, &query)

	return cmd
}

func newKVPutCommand() *cobra.Command {
	var (
		file    string
		flags   uint64
		cas     uint64
		acquire string
		release string
	)

	cmd := &cobra.Command{
		Use:   "put KEY [VALUE]",
		Short: "Write a key",
		Long:  "Write VALUE, the contents of --file, or standard input (--file -) to KEY",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			var value []byte

			switch {
			case len(args) == 2 && file != "":
				return fmt.Errorf("VALUE and --file: %w", ErrConflictingFlags)
			case len(args) == 2:
				value = []byte(args[1])
			case file != "":
				data, err := readInput(cmd, file)
				if err != nil {
					return err
				}

				value = data
			}

			req := &consul.KVSetRequest{Key: key, Value: value, Acquire: acquire, Release: release}
			if cmd.Flags().Changed("flags") {
				req.Flags = &flags
			}

			if cmd.Flags().Changed("cas") {
				req.CAS = &cas
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			resp, err := client.KV().Set(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to write %s: %w", key, err)
			}

			if !resp.Payload {
				return fmt.Errorf("%s: %w", key, ErrKVWriteRejected)
			}

			printSuccess(cmd, "Success! Data written to: %s", key)

			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read the value from a file, - for standard input")
	cmd.Flags().Uint64Var(&flags, "flags", 0, "opaque flags stored with the key")
	cmd.Flags().Uint64Var(&cas, "cas", 0, "only write if the key's modify index matches")
	cmd.Flags().StringVar(&acquire, "acquire", "", "acquire the key's lock for this session")
	cmd.Flags().StringVar(&release, "release", "", "release the key's lock held by this session")

	return cmd
}

func newKVDeleteCommand() *cobra.Command {
	var (
		recurse bool
		cas     uint64
	)

	cmd := &cobra.Command{
		Use:   "delete KEY",
		Short: "Delete a key",
		Long:  "Delete a key, or every key under a prefix with --recurse",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := ""
			if len(args) > 0 {
				key = args[0]
			}

			req := &consul.KVDeleteRequest{Key: key, Recurse: recurse}
			if cmd.Flags().Changed("cas") {
				req.CAS = &cas
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			resp, err := client.KV().Delete(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to delete %s: %w", key, err)
			}

			if !resp.Payload {
				return fmt.Errorf("%s: %w", key, ErrKVDeleteRejected)
			}

			printSuccess(cmd, "Success! Deleted key: %s", key)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&recurse, "recurse", "r", false, "delete every key under the prefix")
	cmd.Flags().Uint64Var(&cas, "cas", 0, "only delete if the key's modify index matches")

	return cmd
}

func newKVKeysCommand() *cobra.Command {
	var (
		separator string
		query     queryFlags
	)

	cmd := &cobra.Command{
		Use:   "keys [PREFIX]",
		Short: "List keys",
		Long:  "List the keys under a prefix without their values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) > 0 {
				prefix = args[0]
			}

			opts, err := query.options()
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			resp, err := client.KV().Keys(cmd.Context(), &consul.KVKeysRequest{
				QueryOptions: opts,
				Prefix:       prefix,
				Separator:    separator,
			})
			if err != nil {
				return fmt.Errorf("failed to list keys: %w", err)
			}

			return outputResult(cmd, resp.Payload, func(table *tablewriter.Table) {
				table.Header("Key")

				for _, key := range resp.Payload {
					_ = table.Append([]string{key})
				}
			})
		},
	}

	cmd.Flags().StringVar(&separator, "separator", "", "list keys only up to this separator")
	addQueryFlags(cmd, &query)

	return cmd
}

func newKVWatchCommand() *cobra.Command {
	var (
		natsURL    string
		natsBucket string
		opts       watch.Options
	)

	cmd := &cobra.Command{
		Use:   "watch PREFIX",
		Short: "Watch a prefix for changes",
		Long: `Follow every key under PREFIX with blocking queries and print each change.
With --nats-url the keys are mirrored into a NATS JetStream key-value bucket instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClientWithTimeout(cmd, 0)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			var sink watch.Sink = printSink(cmd)

			if natsURL != "" {
				natsSink, err := watch.NewNATSKVSink(ctx, natsURL, natsBucket)
				if err != nil {
					return err
				}
				defer func() { _ = natsSink.Close() }()

				sink = natsSink
			}

			opts.Logger = &writerLogger{w: cmd.ErrOrStderr()}

			watcher, err := watch.KeyPrefix(client.KV(), args[0], sink, &opts)
			if err != nil {
				return err
			}

			err = watcher.Run(ctx)
			if ctx.Err() != nil {
				return nil
			}

			return err
		},
	}

	cmd.Flags().StringVar(&natsURL, "nats-url", "", "mirror keys into NATS JetStream at this URL")
	cmd.Flags().StringVar(&natsBucket, "nats-bucket", "consul-kv", "JetStream key-value bucket name")
	cmd.Flags().DurationVar(&opts.Wait, "wait", 0, "wait of each blocking query (default 5m)")

	return cmd
}

func printSink(cmd *cobra.Command) watch.FuncSink {
	return watch.FuncSink{
		PutFunc: func(_ context.Context, pair consul.KVPair) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "PUT %s=%s\n", pair.Key, pair.Value)

			return err
		},
		DeleteFunc: func(_ context.Context, key string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "DELETE %s\n", key)

			return err
		},
	}
}
