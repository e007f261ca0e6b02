package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var ticketsCmd = &cobra.Command{
	Use:     "tickets",
	Aliases: []string{"ls"},
	Short:   "List tickets matching the filters",
	RunE:    runTickets,
}

func init() {
	rootCmd.AddCommand(ticketsCmd)
}

func runTickets(cmd *cobra.Command, args []string) error {
	spec, err := filterSpecFromFlags()
	if err != nil {
		return err
	}

	components, err := newComponents(cmd.Context())
	if err != nil {
		return err
	}

	out, err := components.Dashboard.GetTickets(cmd.Context(), spec)
	if err != nil {
		return err
	}

	table := tablewriter.NewTable(os.Stdout)
	table.Header([]string{"ID", "Title", "Status", "Client", "Assignee", "Created"})
	for _, t := range out.Tickets {
		created := ""
		if t.CreatedDate != nil {
			created = t.CreatedDate.Format("2006-01-02")
		}
		if err := table.Append([]string{t.ID, t.Title, t.Status, t.Client, t.Assignee, created}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("\nRows: %d (snapshot %s)\n", len(out.Tickets), out.Meta.SnapshotID)
	return nil
}
