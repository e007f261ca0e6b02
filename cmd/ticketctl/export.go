package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ticket-dashboard/internal/domain"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the filtered dataset to a file",
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "export format: csv, xlsx or html")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default: stdout for csv/html)")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := domain.ParseExportFormat(exportFormat)
	if err != nil {
		return err
	}
	if format == domain.FormatXLSX && exportOut == "" {
		return fmt.Errorf("--out is required for xlsx export")
	}

	spec, err := filterSpecFromFlags()
	if err != nil {
		return err
	}

	components, err := newComponents(cmd.Context())
	if err != nil {
		return err
	}

	payload, err := components.Dashboard.Export(cmd.Context(), spec, format)
	if err != nil {
		return err
	}

	if exportOut == "" {
		_, err = os.Stdout.Write(payload)
		return err
	}
	if err := os.WriteFile(exportOut, payload, 0o644); err != nil {
		return err
	}
	fmt.Printf("Wrote %d bytes to %s\n", len(payload), exportOut)
	return nil
}
