package commands

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/consul-client/internal/constants"
)

// NewAgentCommand creates the agent command group.
func NewAgentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Inspect the local agent",
		Long:  "Show configuration and membership of the Consul agent being talked to",
	}

	cmd.AddCommand(newAgentSelfCommand())

	return cmd
}

func newAgentSelfCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "self",
		Short: "Show agent configuration",
		Long:  "Display the configuration and member information of the local agent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			resp, err := client.Agent().Self(cmd.Context(), nil)
			if err != nil {
				return fmt.Errorf("failed to read agent configuration: %w", err)
			}

			self := resp.Payload

			return outputResult(cmd, self, func(table *tablewriter.Table) {
				table.Header("Property", "Value")

				if self.Config != nil {
					server := constants.NotAvailable
					if self.Config.Server != nil {
						server = strconv.FormatBool(*self.Config.Server)
					}

					_ = table.Append([]string{"Node", formatValue(self.Config.NodeName)})
					_ = table.Append([]string{"Node ID", formatValue(self.Config.NodeID)})
					_ = table.Append([]string{"Datacenter", formatValue(self.Config.Datacenter)})
					_ = table.Append([]string{"Server", server})
					_ = table.Append([]string{"Version", formatValue(self.Config.Version)})
					_ = table.Append([]string{"Revision", formatValue(self.Config.Revision)})
				}

				if self.Member != nil {
					_ = table.Append([]string{"Address", fmt.Sprintf("%s:%d", self.Member.Addr, self.Member.Port)})
				}

				_ = table.Append([]string{"Meta", formatMeta(self.Meta)})
			})
		},
	}
}
