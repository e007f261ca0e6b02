package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the configured source and print snapshot metadata",
	RunE:  runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	components, err := newComponents(cmd.Context())
	if err != nil {
		return err
	}

	snap, stale, err := components.Snapshots.GetCurrent(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Snapshot:   %s\n", snap.ID)
	fmt.Printf("Source:     %s\n", snap.SourceSignature)
	fmt.Printf("Fetched at: %s\n", snap.FetchedAt.UTC().Format("2006-01-02 15:04:05 UTC"))
	fmt.Printf("Tickets:    %d\n", len(snap.Tickets))
	if stale {
		fmt.Println(color.YellowString("Warning: snapshot is stale, the last refresh failed"))
	}
	return nil
}
