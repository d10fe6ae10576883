package commands

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display detailed version information about consulctl",
		RunE: func(cmd *cobra.Command, args []string) error {
			type VersionInfo struct {
				Version string `json:"version" yaml:"version"`
				Commit  string `json:"commit"  yaml:"commit"`
				Built   string `json:"built"   yaml:"built"`
			}

			info := VersionInfo{
				Version: version,
				Commit:  commit,
				Built:   date,
			}

			return outputResult(cmd, info, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append([]string{"Version", version})
				_ = table.Append([]string{"Commit", commit})
				_ = table.Append([]string{"Built", date})
			})
		},
	}
}
