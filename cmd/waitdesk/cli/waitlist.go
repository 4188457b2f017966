package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/waitdesk/waitdesk/internal/handler"
	"github.com/waitdesk/waitdesk/internal/query"
	"github.com/waitdesk/waitdesk/internal/service"
)

func newWaitlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "waitlist",
		Short: "Inspect and export waitlist signups",
	}

	cmd.AddCommand(newWaitlistStatsCmd())
	cmd.AddCommand(newWaitlistExportCmd())

	return cmd
}

// ---------- waitlist stats ----------

func newWaitlistStatsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print signup totals per tier and for the last 24 hours",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWaitlistStats(cmd.Context(), jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func runWaitlistStats(ctx context.Context, jsonOutput bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	provider, st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer provider.Close()

	stats, err := service.NewWaitlistService(st).Stats(ctx)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(os.Stdout, stats)
	}
	fmt.Printf("Total signups:   %d\n", stats.Total)
	fmt.Printf("  tier 1:        %d\n", stats.Tier1)
	fmt.Printf("  tier 2:        %d\n", stats.Tier2)
	fmt.Printf("  tier 3:        %d\n", stats.Tier3)
	fmt.Printf("Last 24 hours:   %d\n", stats.Recent24h)
	return nil
}

// ---------- waitlist export ----------

type exportFlags struct {
	format           string
	output           string
	search           string
	tier             int
	currentApp       string
	sendToCountry    string
	researchFollowUp string
	dateFrom         string
	dateTo           string
}

// values renders the filter flags as dashboard query parameters.
func (f exportFlags) values() url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	set("search", f.search)
	if f.tier > 0 {
		v.Set("tier", fmt.Sprint(f.tier))
	}
	set("currentApp", f.currentApp)
	set("sendToCountry", f.sendToCountry)
	set("researchFollowUp", f.researchFollowUp)
	set("dateFrom", f.dateFrom)
	set("dateTo", f.dateTo)
	return v
}

func newWaitlistExportCmd() *cobra.Command {
	var f exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export signups matching the filters as CSV or JSON",
		Example: `  waitdesk waitlist export                         # CSV to waitlist-export-<date>.csv
  waitdesk waitlist export --format json -o -      # JSON to stdout
  waitdesk waitlist export --tier 1 --send-to-country Ghana`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWaitlistExport(cmd.Context(), f)
		},
	}

	cmd.Flags().StringVar(&f.format, "format", handler.FormatCSV, "Export format: csv or json")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output file, - for stdout (default waitlist-export-<date>.<format>)")
	cmd.Flags().StringVar(&f.search, "search", "", "Email substring")
	cmd.Flags().IntVar(&f.tier, "tier", 0, "Signup tier")
	cmd.Flags().StringVar(&f.currentApp, "current-app", "", "Current remittance app")
	cmd.Flags().StringVar(&f.sendToCountry, "send-to-country", "", "Destination country")
	cmd.Flags().StringVar(&f.researchFollowUp, "research-follow-up", "", "Research follow-up answer")
	cmd.Flags().StringVar(&f.dateFrom, "date-from", "", "Earliest signup date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.dateTo, "date-to", "", "Latest signup date (YYYY-MM-DD)")

	return cmd
}

func runWaitlistExport(ctx context.Context, f exportFlags) error {
	if f.format != handler.FormatCSV && f.format != handler.FormatJSON {
		return fmt.Errorf("unsupported export format %q; use csv or json", f.format)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	provider, st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer provider.Close()

	rows, err := service.NewWaitlistService(st).Export(ctx, query.ParseWaitlistFilter(f.values(), loc))
	if err != nil {
		return err
	}
	if len(rows) == 0 && f.format == handler.FormatCSV {
		return fmt.Errorf("no data to export")
	}

	path := f.output
	if path == "" {
		path = handler.ExportFilename(time.Now(), f.format)
	}
	var w io.Writer = os.Stdout
	if path != "-" {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer file.Close()
		w = file
	}

	if f.format == handler.FormatJSON {
		err = json.NewEncoder(w).Encode(rows)
	} else {
		err = handler.WriteWaitlistCSV(w, rows)
	}
	if err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	if path != "-" {
		fmt.Fprintf(os.Stderr, "Exported %d signups to %s\n", len(rows), path)
	}
	return nil
}
