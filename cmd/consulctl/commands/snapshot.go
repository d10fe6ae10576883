package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/consul-client/internal/constants"
	"github.com/fivetwenty-io/consul-client/pkg/consul"
)

// NewSnapshotCommand creates the snapshot command group.
func NewSnapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save and restore server state",
		Long:  "Save a snapshot of the Consul servers' state to a file, or restore one",
	}

	cmd.AddCommand(newSnapshotSaveCommand())
	cmd.AddCommand(newSnapshotRestoreCommand())

	return cmd
}

func newSnapshotSaveCommand() *cobra.Command {
	var stale bool

	cmd := &cobra.Command{
		Use:   "save FILE",
		Short: "Save a snapshot",
		Long:  "Write a snapshot archive of the servers' state to FILE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			req := &consul.SnapshotSaveRequest{}
			if stale {
				req.Consistency = consul.ConsistencyStale
			}

			resp, err := client.Snapshots().Save(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to save snapshot: %w", err)
			}

			err = os.WriteFile(args[0], resp.Payload, constants.ConfigFilePerm)
			if err != nil {
				return fmt.Errorf("failed to write %s: %w", args[0], err)
			}

			printSuccess(cmd, "Saved snapshot to %s (index %d)", args[0], resp.IndexOr(0))

			return nil
		},
	}

	cmd.Flags().BoolVar(&stale, "stale", false, "allow any server to answer")

	return cmd
}

func newSnapshotRestoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restore FILE",
		Short: "Restore a snapshot",
		Long:  "Restore the servers' state from a snapshot archive, - for standard input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			if len(data) == 0 {
				return constants.ErrSnapshotFileEmpty
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			_, err = client.Snapshots().Restore(cmd.Context(), &consul.SnapshotRestoreRequest{Snapshot: data})
			if err != nil {
				return fmt.Errorf("failed to restore snapshot: %w", err)
			}

			printSuccess(cmd, "Restored snapshot from %s", args[0])

			return nil
		},
	}
}
