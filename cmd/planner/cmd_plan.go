package main

import (
	"dropoff-route-planner/internal/adapters/document"
	"dropoff-route-planner/internal/app"
	"dropoff-route-planner/internal/config"
	"dropoff-route-planner/internal/domain"
	"dropoff-route-planner/internal/platform/logging"
	"dropoff-route-planner/internal/ports"
	"dropoff-route-planner/internal/services"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type planOptions struct {
	selected int
	out      string
	format   string
	lang     string
}

func newPlanCmd() *cobra.Command {
	opts := planOptions{}

	cmd := &cobra.Command{
		Use:   "plan REQUEST.yaml",
		Short: "Plan every visiting order for a request file",
		Long: "Reads a YAML planning request, computes a schedule for every visiting order and prints them.\n" +
			"With --select the chosen route is also exported as a document.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.selected, "select", -1, "index of the route to export")
	cmd.Flags().StringVar(&opts.out, "out", "", "document output path (default selected_route.<ext>)")
	cmd.Flags().StringVar(&opts.format, "format", "pdf", "document format: pdf or text")
	cmd.Flags().StringVar(&opts.lang, "lang", "", "document language (overrides DOCUMENT_LANGUAGE)")

	return cmd
}

func runPlan(cmd *cobra.Command, path string, opts planOptions) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.lang != "" {
		cfg.DocumentLanguage = opts.lang
	}
	logger := logging.SetupWithWriter(cmd.ErrOrStderr(), cfg.Environment, cfg.LogLevel)

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	in, err := readRequest(f)
	if err != nil {
		return err
	}
	req, err := domain.NewPlanningRequest(in, cfg.MaxDestinations)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	ctx = logger.WithContext(ctx)

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.Planner.Plan(ctx, req)
	if err != nil {
		return err
	}

	if err := printResult(cmd.OutOrStdout(), result, a.Formatter); err != nil {
		return err
	}

	if opts.selected < 0 {
		return nil
	}
	return exportSelected(cmd.OutOrStdout(), result, opts, a)
}

func exportSelected(w io.Writer, result *domain.PlanningResult, opts planOptions, a *app.App) error {
	var exporter ports.DocumentExporter = a.Exporter
	switch strings.ToLower(opts.format) {
	case "pdf":
	case "text", "txt":
		exporter = document.NewTextExporter()
	default:
		return fmt.Errorf("unknown document format %q", opts.format)
	}

	doc, err := services.ExportRoute(result, opts.selected, a.Formatter, exporter)
	if err != nil {
		return err
	}

	out := opts.out
	if out == "" {
		out = "selected_route" + exporter.FileExtension()
	}
	if out == "-" {
		_, err := w.Write(doc)
		return err
	}
	if err := os.WriteFile(out, doc, 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	fmt.Fprintf(w, "\nroute %d written to %s\n", opts.selected, out)
	return nil
}

// printResult writes one row per candidate in index order.
func printResult(w io.Writer, result *domain.PlanningResult, f services.SheetFormatter) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tROUTE\tDISTANCE\tDURATION\tARRIVALS")

	for _, e := range result.Entries {
		s := e.Schedule
		if s.Failed() {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s: %s\n",
				e.Candidate.Index, e.Candidate.Label,
				services.ErrorSentinel, services.ErrorSentinel, s.Failure, s.Reason)
			continue
		}

		arrivals := make([]string, 0, len(s.Arrivals))
		for _, a := range s.Arrivals {
			clock := "--:--:--"
			if a.Known {
				clock = a.ArriveAt.Format(domain.ArrivalLayout)
			}
			if a.Late {
				clock += "!"
			}
			arrivals = append(arrivals, a.Name+" "+clock)
		}

		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			e.Candidate.Index, e.Candidate.Label,
			f.Distance(s.TotalDistanceMeters), f.Duration(s.TotalDurationSeconds),
			strings.Join(arrivals, ", "))
	}

	return tw.Flush()
}
