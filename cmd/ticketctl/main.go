// ticketctl runs the dashboard pipeline from the terminal: fetch the sheet,
// inspect KPIs, list filtered tickets, or write an export file. It wires the
// same components as the server, so no server needs to be running.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ticket-dashboard/internal/di"
	"ticket-dashboard/internal/domain"
	"ticket-dashboard/internal/infra/config"
	"ticket-dashboard/internal/infra/logger"
)

var (
	verbose bool

	statusFlags []string
	clientFlags []string
	queryFlag   string
	fromFlag    string
	toFlag      string
)

var rootCmd = &cobra.Command{
	Use:   "ticketctl",
	Short: "Ticket dashboard pipeline CLI",
	Long: `ticketctl runs the ticket dashboard's data pipeline directly.

Example usage:
  ticketctl fetch                          # Fetch and show snapshot metadata
  ticketctl kpis --status Active           # KPI table for active tickets
  ticketctl tickets --q search-term        # Filtered ticket table
  ticketctl export --format xlsx -o t.xlsx # Write an export file`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringArrayVar(&statusFlags, "status", nil, "status filter (repeatable)")
	rootCmd.PersistentFlags().StringArrayVar(&clientFlags, "client", nil, "client filter (repeatable)")
	rootCmd.PersistentFlags().StringVar(&queryFlag, "q", "", "free-text search")
	rootCmd.PersistentFlags().StringVar(&fromFlag, "from", "", "created-date range start (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&toFlag, "to", "", "created-date range end (YYYY-MM-DD)")
}

// newComponents wires the pipeline the same way the server does. CLI runs
// log to stderr and stay quiet unless --verbose is set.
func newComponents(ctx context.Context) (*di.ApplicationComponents, error) {
	cfg := config.Load()

	var log *slog.Logger
	if verbose {
		log = logger.New()
	} else {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	return di.NewApplicationComponents(ctx, cfg, log)
}

func filterSpecFromFlags() (domain.FilterSpec, error) {
	spec := domain.FilterSpec{
		Statuses: statusFlags,
		Clients:  clientFlags,
		Query:    queryFlag,
	}

	var err error
	if spec.From, err = parseFlagDate(fromFlag); err != nil {
		return spec, err
	}
	if spec.To, err = parseFlagDate(toFlag); err != nil {
		return spec, err
	}
	return spec, spec.Validate()
}

func parseFlagDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", value)
	}
	return &t, nil
}
