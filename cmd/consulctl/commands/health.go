package commands

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/consul-client/pkg/consul"
)

// NewHealthCommand creates the health command group.
func NewHealthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Query health checks",
		Long:  "Show the health of nodes, services and checks",
	}

	cmd.AddCommand(newHealthNodeCommand())
	cmd.AddCommand(newHealthChecksCommand())
	cmd.AddCommand(newHealthServiceCommand())
	cmd.AddCommand(newHealthStateCommand())

	return cmd
}

func newHealthNodeCommand() *cobra.Command {
	var query queryFlags

	cmd := &cobra.Command{
		Use:   "node NODE",
		Short: "List checks of a node",
		Long:  "List every check registered on a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := query.options()
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			resp, err := client.Health().Node(cmd.Context(), &consul.HealthNodeRequest{QueryOptions: opts, Node: args[0]})
			if err != nil {
				return fmt.Errorf("failed to list checks of node %s: %w", args[0], err)
			}

			return outputChecks(cmd, resp.Payload)
		},
	}

	addQueryFlags(cmd, &query)

	return cmd
}

func newHealthChecksCommand() *cobra.Command {
	var query queryFlags

	cmd := &cobra.Command{
		Use:   "checks SERVICE",
		Short: "List checks of a service",
		Long:  "List the checks associated with a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := query.options()
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			resp, err := client.Health().Checks(cmd.Context(), &consul.HealthChecksRequest{QueryOptions: opts, Service: args[0]})
			if err != nil {
				return fmt.Errorf("failed to list checks of service %s: %w", args[0], err)
			}

			return outputChecks(cmd, resp.Payload)
		},
	}

	addQueryFlags(cmd, &query)

	return cmd
}

func newHealthServiceCommand() *cobra.Command {
	var (
		tags    []string
		passing bool
		connect bool
		ingress bool
		query   queryFlags
	)

	cmd := &cobra.Command{
		Use:   "service SERVICE",
		Short: "List healthy instances of a service",
		Long:  "List the instances of a service together with their node and aggregated check status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if connect && ingress {
				return fmt.Errorf("--connect and --ingress: %w", ErrConflictingFlags)
			}

			opts, err := query.options()
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			req := &consul.HealthServiceRequest{QueryOptions: opts, Service: args[0], Tags: tags, Passing: passing}

			var resp *consul.Response[[]consul.ServiceEntry]

			switch {
			case connect:
				resp, err = client.Health().Connect(cmd.Context(), req)
			case ingress:
				resp, err = client.Health().Ingress(cmd.Context(), req)
			default:
				resp, err = client.Health().Service(cmd.Context(), req)
			}

			if err != nil {
				return fmt.Errorf("failed to list instances of %s: %w", args[0], err)
			}

			return outputResult(cmd, resp.Payload, func(table *tablewriter.Table) {
				table.Header("Node", "Service ID", "Address", "Port", "Status")

				for _, entry := range resp.Payload {
					node, address := "-", "-"
					if entry.Node != nil {
						node, address = entry.Node.Node, entry.Node.Address
					}

					id, port := "-", "-"
					if entry.Service != nil {
						id, port = entry.Service.ID, strconv.Itoa(entry.Service.Port)
						if entry.Service.Address != "" {
							address = entry.Service.Address
						}
					}

					_ = table.Append([]string{node, id, address, port, formatStatus(entry.Checks.AggregatedStatus())})
				}
			})
		},
	}

	cmd.Flags().StringSliceVar(&tags, "tag", nil, "only instances with this tag (repeatable)")
	cmd.Flags().BoolVar(&passing, "passing", false, "only instances whose checks all pass")
	cmd.Flags().BoolVar(&connect, "connect", false, "list Connect-capable instances")
	cmd.Flags().BoolVar(&ingress, "ingress", false, "list ingress gateways for the service")
	addQueryFlags(cmd, &query)

	return cmd
}

func newHealthStateCommand() *cobra.Command {
	var query queryFlags

	cmd := &cobra.Command{
		Use:   "state STATE",
		Short: "List checks in a state",
		Long:  "List every check in STATE: any, passing, warning or critical",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := query.options()
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			resp, err := client.Health().State(cmd.Context(), &consul.HealthStateRequest{QueryOptions: opts, State: args[0]})
			if err != nil {
				return fmt.Errorf("failed to list %s checks: %w", args[0], err)
			}

			return outputChecks(cmd, resp.Payload)
		},
	}

	addQueryFlags(cmd, &query)

	return cmd
}

func outputChecks(cmd *cobra.Command, checks []consul.HealthCheck) error {
	return outputResult(cmd, checks, func(table *tablewriter.Table) {
		table.Header("Node", "Check ID", "Name", "Status", "Service")

		for _, check := range checks {
			_ = table.Append([]string{
				check.Node,
				check.CheckID,
				check.Name,
				formatStatus(check.Status),
				formatValue(check.ServiceName),
			})
		}
	})
}
