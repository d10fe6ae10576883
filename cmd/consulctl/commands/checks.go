package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/consul-client/pkg/consul"
)

// NewChecksCommand creates the check command group.
func NewChecksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "check",
		Aliases: []string{"checks"},
		Short:   "Manage agent checks",
		Long:    "List agent checks and report TTL check results",
	}

	cmd.AddCommand(newChecksListCommand())
	cmd.AddCommand(newChecksTTLCommand(consul.TTLPass, "Mark a TTL check as passing"))
	cmd.AddCommand(newChecksTTLCommand(consul.TTLWarn, "Mark a TTL check as warning"))
	cmd.AddCommand(newChecksTTLCommand(consul.TTLFail, "Mark a TTL check as critical"))
	cmd.AddCommand(newChecksDeregisterCommand())

	return cmd
}

func newChecksListCommand() *cobra.Command {
	var query queryFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List agent checks",
		Long:  "List the checks registered with the local agent",
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

			resp, err := client.Checks().List(cmd.Context(), &consul.CheckListRequest{QueryOptions: opts})
			if err != nil {
				return fmt.Errorf("failed to list checks: %w", err)
			}

			return outputResult(cmd, resp.Payload, func(table *tablewriter.Table) {
				table.Header("Check ID", "Name", "Status", "Service", "Output")

				for _, id := range sortedKeys(resp.Payload) {
					check := resp.Payload[id]
					_ = table.Append([]string{
						check.CheckID,
						check.Name,
						formatStatus(check.Status),
						formatValue(check.ServiceName),
						formatValue(check.Output),
					})
				}
			})
		},
	}

	addQueryFlags(cmd, &query)

	return cmd
}

func newChecksTTLCommand(status consul.TTLStatus, short string) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   string(status) + " CHECK_ID",
		Short: short,
		Long:  short + " and reset its TTL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			req := &consul.CheckTTLRequest{CheckID: args[0], Note: note}

			switch status {
			case consul.TTLPass:
				_, err = client.Checks().Pass(cmd.Context(), req)
			case consul.TTLWarn:
				_, err = client.Checks().Warn(cmd.Context(), req)
			case consul.TTLFail:
				_, err = client.Checks().Fail(cmd.Context(), req)
			}

			if err != nil {
				return fmt.Errorf("failed to update check %s: %w", args[0], err)
			}

			printSuccess(cmd, "Check %s updated: %s", args[0], status)

			return nil
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "message stored as the check output")

	return cmd
}

func newChecksDeregisterCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "deregister CHECK_ID",
		Short: "Deregister a check",
		Long:  "Remove a check from the local agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			_, err = client.Checks().Deregister(cmd.Context(), &consul.CheckDeregisterRequest{CheckID: args[0]})
			if err != nil {
				return fmt.Errorf("failed to deregister check %s: %w", args[0], err)
			}

			printSuccess(cmd, "Deregistered check: %s", args[0])

			return nil
		},
	}
}
