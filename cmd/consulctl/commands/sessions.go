package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/consul-client/pkg/consul"
)

// NewSessionsCommand creates the session command group.
func NewSessionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "session",
		Aliases: []string{"sessions"},
		Short:   "Manage sessions",
		Long:    "Create, inspect, renew and destroy Consul sessions",
	}

	cmd.AddCommand(newSessionsCreateCommand())
	cmd.AddCommand(newSessionsListCommand())
	cmd.AddCommand(newSessionsInfoCommand())
	cmd.AddCommand(newSessionsDestroyCommand())
	cmd.AddCommand(newSessionsRenewCommand())

	return cmd
}

func newSessionsCreateCommand() *cobra.Command {
	var entry consul.SessionEntry

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a session",
		Long:  "Create a session and print its ID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			resp, err := client.Sessions().Create(cmd.Context(), &consul.SessionCreateRequest{Session: entry})
			if err != nil {
				return fmt.Errorf("failed to create session: %w", err)
			}

			return outputResult(cmd, resp.Payload, func(table *tablewriter.Table) {
				table.Header("ID")
				_ = table.Append([]string{resp.Payload.ID})
			})
		},
	}

	cmd.Flags().StringVar(&entry.Name, "name", "", "session name")
	cmd.Flags().StringVar(&entry.Node, "node", "", "node the session belongs to (defaults to the agent)")
	cmd.Flags().StringVar(&entry.TTL, "ttl", "", "session TTL, for example 30s")
	cmd.Flags().StringVar(&entry.LockDelay, "lock-delay", "", "lock delay, for example 15s")
	cmd.Flags().StringVar(&entry.Behavior, "behavior", "", "invalidation behavior (release, delete)")
	cmd.Flags().StringSliceVar(&entry.NodeChecks, "node-check", nil, "node check the session depends on (repeatable)")

	return cmd
}

func newSessionsListCommand() *cobra.Command {
	var (
		node  string
		query queryFlags
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions",
		Long:  "List every session, or only the sessions of --node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := query.options()
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			var resp *consul.Response[[]consul.Session]
			if node != "" {
				resp, err = client.Sessions().Node(cmd.Context(), &consul.SessionNodeRequest{QueryOptions: opts, Node: node})
			} else {
				resp, err = client.Sessions().List(cmd.Context(), &consul.SessionListRequest{QueryOptions: opts})
			}

			if err != nil {
				return fmt.Errorf("failed to list sessions: %w", err)
			}

			return outputSessions(cmd, resp.Payload)
		},
	}

	cmd.Flags().StringVar(&node, "node", "", "only sessions of this node")
	addQueryFlags(cmd, &query)

	return cmd
}

func newSessionsInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info SESSION_ID",
		Short: "Show a session",
		Long:  "Display a single session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			resp, err := client.Sessions().Info(cmd.Context(), &consul.SessionInfoRequest{ID: args[0]})
			if err != nil {
				return fmt.Errorf("failed to read session %s: %w", args[0], err)
			}

			if len(resp.Payload) == 0 {
				return fmt.Errorf("%s: %w", args[0], ErrSessionNotFound)
			}

			return outputSessions(cmd, resp.Payload)
		},
	}
}

func newSessionsDestroyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "destroy SESSION_ID",
		Short: "Destroy a session",
		Long:  "Destroy a session, releasing or deleting the locks it holds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			_, err = client.Sessions().Destroy(cmd.Context(), &consul.SessionDestroyRequest{ID: args[0]})
			if err != nil {
				return fmt.Errorf("failed to destroy session %s: %w", args[0], err)
			}

			printSuccess(cmd, "Destroyed session: %s", args[0])

			return nil
		},
	}
}

func newSessionsRenewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "renew SESSION_ID",
		Short: "Renew a session",
		Long:  "Reset the TTL of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			resp, err := client.Sessions().Renew(cmd.Context(), &consul.SessionRenewRequest{ID: args[0]})
			if err != nil {
				return fmt.Errorf("failed to renew session %s: %w", args[0], err)
			}

			if len(resp.Payload) == 0 {
				return fmt.Errorf("%s: %w", args[0], ErrSessionNotFound)
			}

			return outputSessions(cmd, resp.Payload)
		},
	}
}

func outputSessions(cmd *cobra.Command, sessions []consul.Session) error {
	return outputResult(cmd, sessions, func(table *tablewriter.Table) {
		table.Header("ID", "Name", "Node", "Behavior", "TTL", "Lock Delay")

		for _, s := range sessions {
			_ = table.Append([]string{
				s.ID,
				formatValue(s.Name),
				s.Node,
				formatValue(s.Behavior),
				formatValue(s.TTL),
				formatDuration(s.LockDelay),
			})
		}
	})
}
