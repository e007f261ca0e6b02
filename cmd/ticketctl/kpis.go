package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var kpisCmd = &cobra.Command{
	Use:   "kpis",
	Short: "Show KPI counts for the filtered dataset",
	RunE:  runKPIs,
}

func init() {
	rootCmd.AddCommand(kpisCmd)
}

func runKPIs(cmd *cobra.Command, args []string) error {
	spec, err := filterSpecFromFlags()
	if err != nil {
		return err
	}

	components, err := newComponents(cmd.Context())
	if err != nil {
		return err
	}

	out, err := components.Dashboard.GetDashboard(cmd.Context(), spec)
	if err != nil {
		return err
	}
	agg := out.Aggregate

	if out.Meta.Stale {
		fmt.Println(color.YellowString("Warning: serving stale data, the last refresh failed"))
	}

	table := tablewriter.NewTable(os.Stdout)
	table.Header([]string{"KPI", "Count"})
	rows := [][]string{
		{"Total Tickets", strconv.Itoa(agg.Total)},
		{color.GreenString("Active"), strconv.Itoa(agg.Active)},
		{color.CyanString("In Progress"), strconv.Itoa(agg.InProgress)},
		{color.BlueString("Completed"), strconv.Itoa(agg.Completed)},
		{color.YellowString("Pending"), strconv.Itoa(agg.Pending)},
		{"Other", strconv.Itoa(agg.Other)},
	}
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("\nActive filters: %d\n", out.ActiveFilters)
	return nil
}
