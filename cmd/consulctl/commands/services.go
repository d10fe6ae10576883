package commands

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/consul-client/pkg/consul"
)

// NewServicesCommand creates the service command group.
func NewServicesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "service",
		Aliases: []string{"services", "svc"},
		Short:   "Manage agent services",
		Long:    "List, register and deregister services on the local agent",
	}

	cmd.AddCommand(newServicesListCommand())
	cmd.AddCommand(newServicesGetCommand())
	cmd.AddCommand(newServicesRegisterCommand())
	cmd.AddCommand(newServicesDeregisterCommand())
	cmd.AddCommand(newServicesMaintenanceCommand())

	return cmd
}

func newServicesListCommand() *cobra.Command {
	var query queryFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List agent services",
		Long:  "List the services registered with the local agent",
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

			resp, err := client.Services().List(cmd.Context(), &consul.ServiceListRequest{QueryOptions: opts})
			if err != nil {
				return fmt.Errorf("failed to list services: %w", err)
			}

			return outputResult(cmd, resp.Payload, func(table *tablewriter.Table) {
				table.Header("ID", "Service", "Address", "Port", "Tags")

				for _, id := range sortedKeys(resp.Payload) {
					svc := resp.Payload[id]
					_ = table.Append([]string{
						svc.ID,
						svc.Service,
						formatValue(svc.Address),
						strconv.Itoa(svc.Port),
						formatTags(svc.Tags),
					})
				}
			})
		},
	}

	addQueryFlags(cmd, &query)

	return cmd
}

func newServicesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get SERVICE_ID",
		Short: "Show an agent service",
		Long:  "Display the registration of a service on the local agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			resp, err := client.Services().Get(cmd.Context(), &consul.ServiceGetRequest{ServiceID: args[0]})
			if err != nil {
				return fmt.Errorf("failed to get service %s: %w", args[0], err)
			}

			svc := resp.Payload

			return outputResult(cmd, svc, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append([]string{"ID", svc.ID})
				_ = table.Append([]string{"Service", svc.Service})
				_ = table.Append([]string{"Kind", formatValue(svc.Kind)})
				_ = table.Append([]string{"Address", formatValue(svc.Address)})
				_ = table.Append([]string{"Port", strconv.Itoa(svc.Port)})
				_ = table.Append([]string{"Tags", formatTags(svc.Tags)})
				_ = table.Append([]string{"Meta", formatMeta(svc.Meta)})
				_ = table.Append([]string{"Datacenter", formatValue(svc.Datacenter)})
			})
		},
	}
}

func newServicesRegisterCommand() *cobra.Command {
	var (
		file     string
		reg      consul.AgentServiceRegistration
		meta     []string
		replace  bool
		checkTTL string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a service",
		Long:  "Register a service with the local agent from flags or a JSON definition (--file)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file != "" {
				data, err := readInput(cmd, file)
				if err != nil {
					return err
				}

				err = json.Unmarshal(data, &reg)
				if err != nil {
					return fmt.Errorf("failed to parse service definition: %w", err)
				}
			}

			parsed, err := parseKeyValues(meta)
			if err != nil {
				return err
			}

			if parsed != nil {
				reg.Meta = parsed
			}

			if checkTTL != "" {
				reg.Check = &consul.AgentServiceCheck{TTL: checkTTL}
			}

			if reg.Name == "" {
				return ErrServiceNameNeeded
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			_, err = client.Services().Register(cmd.Context(), &consul.ServiceRegisterRequest{
				Service:               reg,
				ReplaceExistingChecks: replace,
			})
			if err != nil {
				return fmt.Errorf("failed to register service %s: %w", reg.Name, err)
			}

			id := reg.ID
			if id == "" {
				id = reg.Name
			}

			printSuccess(cmd, "Registered service: %s", id)

			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON service definition, - for standard input")
	cmd.Flags().StringVar(&reg.Name, "name", "", "service name")
	cmd.Flags().StringVar(&reg.ID, "id", "", "service ID (defaults to the name)")
	cmd.Flags().StringVar(&reg.Address, "address", "", "service address")
	cmd.Flags().IntVar(&reg.Port, "port", 0, "service port")
	cmd.Flags().StringSliceVar(&reg.Tags, "tag", nil, "service tag (repeatable)")
	cmd.Flags().StringArrayVar(&meta, "meta", nil, "metadata as key=value (repeatable)")
	cmd.Flags().StringVar(&checkTTL, "check-ttl", "", "attach a TTL check with this TTL")
	cmd.Flags().BoolVar(&replace, "replace-existing-checks", false, "remove checks missing from this registration")

	return cmd
}

func newServicesDeregisterCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "deregister SERVICE_ID",
		Short: "Deregister a service",
		Long:  "Remove a service and its checks from the local agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			_, err = client.Services().Deregister(cmd.Context(), &consul.ServiceDeregisterRequest{ServiceID: args[0]})
			if err != nil {
				return fmt.Errorf("failed to deregister service %s: %w", args[0], err)
			}

			printSuccess(cmd, "Deregistered service: %s", args[0])

			return nil
		},
	}
}

func newServicesMaintenanceCommand() *cobra.Command {
	var (
		disable bool
		reason  string
	)

	cmd := &cobra.Command{
		Use:   "maintenance SERVICE_ID",
		Short: "Toggle maintenance mode",
		Long:  "Put a service into maintenance mode, or take it out with --disable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			_, err = client.Services().Maintenance(cmd.Context(), &consul.ServiceMaintenanceRequest{
				ServiceID: args[0],
				Enable:    !disable,
				Reason:    reason,
			})
			if err != nil {
				return fmt.Errorf("failed to change maintenance mode of %s: %w", args[0], err)
			}

			if disable {
				printSuccess(cmd, "Maintenance mode disabled for service: %s", args[0])
			} else {
				printSuccess(cmd, "Maintenance mode enabled for service: %s", args[0])
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&disable, "disable", false, "take the service out of maintenance")
	cmd.Flags().StringVar(&reason, "reason", "", "reason shown in the maintenance check")

	return cmd
}
