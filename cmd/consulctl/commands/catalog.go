package commands

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/consul-client/pkg/consul"
)

// NewCatalogCommand creates the catalog command group.
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Query the catalog",
		Long:  "List datacenters, nodes and services known to the Consul catalog",
	}

	cmd.AddCommand(newCatalogDatacentersCommand())
	cmd.AddCommand(newCatalogNodesCommand())
	cmd.AddCommand(newCatalogServicesCommand())
	cmd.AddCommand(newCatalogServiceCommand())

	return cmd
}

func newCatalogDatacentersCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "datacenters",
		Aliases: []string{"dcs"},
		Short:   "List datacenters",
		Long:    "List every known datacenter, nearest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			resp, err := client.Catalog().Datacenters(cmd.Context(), nil)
			if err != nil {
				return fmt.Errorf("failed to list datacenters: %w", err)
			}

			return outputResult(cmd, resp.Payload, func(table *tablewriter.Table) {
				table.Header("Datacenter")

				for _, dc := range resp.Payload {
					_ = table.Append([]string{dc})
				}
			})
		},
	}
}

func newCatalogNodesCommand() *cobra.Command {
	var query queryFlags

	cmd := &cobra.Command{
		Use:   "nodes",
		Short: "List nodes",
		Long:  "List the nodes registered in the catalog",
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

			resp, err := client.Catalog().Nodes(cmd.Context(), &consul.CatalogNodesRequest{QueryOptions: opts})
			if err != nil {
				return fmt.Errorf("failed to list nodes: %w", err)
			}

			return outputResult(cmd, resp.Payload, func(table *tablewriter.Table) {
				table.Header("Node", "ID", "Address", "Datacenter", "Meta")

				for _, node := range resp.Payload {
					_ = table.Append([]string{
						node.Node,
						formatValue(node.ID),
						node.Address,
						formatValue(node.Datacenter),
						formatMeta(node.Meta),
					})
				}
			})
		},
	}

	addQueryFlags(cmd, &query)

	return cmd
}

func newCatalogServicesCommand() *cobra.Command {
	var query queryFlags

	cmd := &cobra.Command{
		Use:   "services",
		Short: "List services",
		Long:  "List the services registered in the catalog with their tags",
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

			resp, err := client.Catalog().Services(cmd.Context(), &consul.CatalogServicesRequest{QueryOptions: opts})
			if err != nil {
				return fmt.Errorf("failed to list services: %w", err)
			}

			return outputResult(cmd, resp.Payload, func(table *tablewriter.Table) {
				table.Header("Service", "Tags")

				for _, name := range sortedKeys(resp.Payload) {
					_ = table.Append([]string{name, formatTags(resp.Payload[name])})
				}
			})
		},
	}

	addQueryFlags(cmd, &query)

	return cmd
}

func newCatalogServiceCommand() *cobra.Command {
	var (
		tags    []string
		connect bool
		query   queryFlags
	)

	cmd := &cobra.Command{
		Use:   "service NAME",
		Short: "List instances of a service",
		Long:  "List the nodes providing a service",
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

			req := &consul.CatalogServiceRequest{QueryOptions: opts, Service: args[0], Tags: tags}

			var resp *consul.Response[[]consul.CatalogService]
			if connect {
				resp, err = client.Catalog().Connect(cmd.Context(), req)
			} else {
				resp, err = client.Catalog().Service(cmd.Context(), req)
			}

			if err != nil {
				return fmt.Errorf("failed to list instances of %s: %w", args[0], err)
			}

			return outputResult(cmd, resp.Payload, func(table *tablewriter.Table) {
				table.Header("Node", "Service ID", "Address", "Port", "Tags")

				for _, svc := range resp.Payload {
					address := svc.ServiceAddress
					if address == "" {
						address = svc.Address
					}

					_ = table.Append([]string{
						svc.Node,
						svc.ServiceID,
						address,
						strconv.Itoa(svc.ServicePort),
						formatTags(svc.ServiceTags),
					})
				}
			})
		},
	}

	cmd.Flags().StringSliceVar(&tags, "tag", nil, "only instances with this tag (repeatable)")
	cmd.Flags().BoolVar(&connect, "connect", false, "list Connect-capable instances")
	addQueryFlags(cmd, &query)

	return cmd
}
