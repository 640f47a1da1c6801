package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/athena-sanity/athena/internal/blueprint"
	"github.com/athena-sanity/athena/internal/definition"
	"github.com/athena-sanity/athena/internal/registry"
	"github.com/athena-sanity/athena/internal/reporting"
	"github.com/athena-sanity/athena/internal/session"
	"github.com/athena-sanity/athena/internal/status"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	outputPath string
	junitPath  string
	verbose    bool
	applyFixes bool
	parallel   bool
	workers    int
	logDir     string
	interpret  bool
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <blueprint.yaml> [blueprint.yaml...]",
		Short: "Run one or more blueprint files",
		Long: `Run the sanity checks declared in one or more blueprint files.

Each blueprint is built against the session registry, executed in resolved
dependency order, and summarized as a result table. A non-zero exit code
signals that a blocking check failed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCommandE,
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output JSON file for results (.zst compresses)")
	cmd.Flags().StringVar(&junitPath, "junit", "", "Output JUnit XML file for results")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output with detailed progress")
	cmd.Flags().BoolVar(&applyFixes, "fix", false, "Attempt fixes for failed checks, then re-check")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "Run blueprint files concurrently")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of concurrent workers (default: 4, requires --parallel)")
	cmd.Flags().StringVar(&logDir, "log-dir", "", "Directory for NDJSON run logs (disabled when empty)")
	cmd.Flags().BoolVar(&interpret, "interpret", false, "Print a plain-language interpretation of the results")

	return cmd
}

func runCommandE(cmd *cobra.Command, args []string) error {
	reg, err := sessionRegistry()
	if err != nil {
		return err
	}

	// Ctrl-C cancels the context; in-flight processors finish and the
	// rest of the pipeline is marked aborted.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	multiFile := len(args) > 1

	var logger session.Logger = session.NopLogger{}
	if logDir != "" {
		fileLogger, err := session.NewFileLogger(session.DefaultLogPath(logDir))
		if err != nil {
			return err
		}
		defer fileLogger.Close()
		logger = fileLogger
	}

	reports := make([]*reporting.Report, len(args))
	if parallel && multiFile {
		g, gctx := errgroup.WithContext(ctx)
		w := workers
		if w <= 0 {
			w = 4
		}
		g.SetLimit(w)
		for i, path := range args {
			g.Go(func() error {
				// Progress listeners stay off in parallel mode so the
				// per-file tables remain the only interleaved output.
				report, err := runSingleBlueprint(gctx, reg, path, logger, false)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				reports[i] = report
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		for _, report := range reports {
			printReport(cmd, report)
		}
	} else {
		for i, path := range args {
			report, err := runSingleBlueprint(ctx, reg, path, logger, true)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			reports[i] = report
			printReport(cmd, report)
		}
	}

	if err := saveReports(cmd, reports, args); err != nil {
		return err
	}

	var failed []string
	for _, report := range reports {
		if report.Failed() {
			failed = append(failed, report.Blueprint)
		}
	}
	if len(failed) > 0 {
		return &CheckFailureError{
			Message: fmt.Sprintf("blocking checks failed in: %s", strings.Join(failed, ", ")),
		}
	}
	return nil
}

func printReport(cmd *cobra.Command, report *reporting.Report) {
	reporting.WriteTable(cmd.OutOrStdout(), report)
	if interpret {
		fmt.Fprintln(cmd.OutOrStdout(), reporting.FormatInterpretation(report))
	}
}

// runSingleBlueprint loads, builds, and executes one blueprint file.
func runSingleBlueprint(ctx context.Context, reg *registry.Registry, path string, logger session.Logger, withProgress bool) (*reporting.Report, error) {
	def, err := definition.Load(path)
	if err != nil {
		return nil, err
	}

	bp, err := def.Build(reg)
	if err != nil {
		return nil, err
	}

	if withProgress {
		if verbose {
			bp.OnProgress(verboseProgressListener)
		} else {
			bp.OnProgress(simpleProgressListener)
		}
	}
	bp.OnProgress(sessionListener(bp, logger))

	if err := bp.Run(ctx); err != nil {
		return nil, err
	}

	if applyFixes {
		if err := bp.RunFixes(ctx); err != nil {
			return nil, err
		}
	}

	return reporting.Build(bp), nil
}

// saveReports writes JSON and JUnit outputs. With multiple blueprint
// files, each report goes to a per-file path derived from the flag value.
func saveReports(cmd *cobra.Command, reports []*reporting.Report, args []string) error {
	save := func(base string, write func(path string, report *reporting.Report) error) error {
		if base == "" {
			return nil
		}
		if len(reports) == 1 {
			if err := write(base, reports[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Results saved to: %s\n", base)
			return nil
		}
		ext := filepath.Ext(base)
		if ext == ".zst" {
			ext = filepath.Ext(strings.TrimSuffix(base, ext)) + ext
		}
		stem := strings.TrimSuffix(base, ext)
		for _, report := range reports {
			path := fmt.Sprintf("%s_%s%s", stem, sanitizeFileName(report.Blueprint), ext)
			if err := write(path, report); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Results saved to: %s\n", path)
		}
		return nil
	}

	if err := save(outputPath, reporting.WriteJSON); err != nil {
		return err
	}
	return save(junitPath, reporting.WriteJUnit)
}

// sanitizeFileName replaces characters that are invalid in filenames.
func sanitizeFileName(name string) string {
	r := strings.NewReplacer("/", "-", "\\", "-", ":", "-", " ", "-")
	return r.Replace(name)
}

// sessionListener translates progress events into session log entries.
func sessionListener(bp *blueprint.Blueprint, logger session.Logger) blueprint.ProgressListener {
	return func(event blueprint.ProgressEvent) {
		switch event.Type {
		case blueprint.EventRunStart:
			_ = logger.Log(session.NewEvent(session.EventRunStart,
				session.RunStartData(event.Blueprint, event.Total)))
		case blueprint.EventProcessorStart:
			_ = logger.Log(session.NewEvent(session.EventCheckStart,
				session.CheckStartData(event.Processor, event.Index+1, event.Total)))
		case blueprint.EventProcessorComplete:
			durationMs := int64(0)
			if p, err := bp.ProcessorByName(event.Processor); err == nil {
				durationMs = p.Duration().Milliseconds()
			}
			_ = logger.Log(session.NewEvent(session.EventCheckEnd,
				session.CheckCompleteData(event.Processor, event.Status.Name(), durationMs)))
		case blueprint.EventProcessorSkipped:
			_ = logger.Log(session.NewEvent(session.EventCheckSkipped,
				session.CheckSkippedData(event.Processor, event.Reason)))
		case blueprint.EventProcessorAborted:
			_ = logger.Log(session.NewEvent(session.EventCheckSkipped,
				session.CheckSkippedData(event.Processor, "aborted")))
		case blueprint.EventFixStart:
			_ = logger.Log(session.NewEvent(session.EventFixStart,
				session.FixData(event.Processor, event.Status.Name())))
		case blueprint.EventFixComplete:
			_ = logger.Log(session.NewEvent(session.EventFixEnd,
				session.FixData(event.Processor, event.Status.Name())))
		case blueprint.EventRunComplete:
			var failed, skipped int
			var durationMs int64
			for _, p := range bp.Processors() {
				if p.Status().IsFail() {
					failed++
				}
				if p.Status() == status.Skipped {
					skipped++
				}
				durationMs += p.Duration().Milliseconds()
			}
			_ = logger.Log(session.NewEvent(session.EventRunEnd,
				session.RunCompleteData(event.Blueprint, event.Total, failed, skipped, durationMs)))
		}
	}
}

func verboseProgressListener(event blueprint.ProgressEvent) {
	switch event.Type {
	case blueprint.EventRunStart:
		fmt.Printf("Running blueprint %s (%d processors)...\n\n", event.Blueprint, event.Total)
	case blueprint.EventProcessorStart:
		fmt.Printf("[%d/%d] Checking %s...\n", event.Index+1, event.Total, event.Processor)
	case blueprint.EventProcessorComplete:
		fmt.Printf("  %s: %s\n", event.Processor, event.Status.Name())
	case blueprint.EventProcessorSkipped:
		fmt.Printf("[%d/%d] %s skipped: %s\n", event.Index+1, event.Total, event.Processor, event.Reason)
	case blueprint.EventProcessorAborted:
		fmt.Printf("[%d/%d] %s aborted\n", event.Index+1, event.Total, event.Processor)
	case blueprint.EventFixStart:
		fmt.Printf("Fixing %s...\n", event.Processor)
	case blueprint.EventFixComplete:
		fmt.Printf("  %s after fix: %s\n", event.Processor, event.Status.Name())
	case blueprint.EventRunComplete:
		fmt.Printf("\nBlueprint %s complete\n\n", event.Blueprint)
	}
}

func simpleProgressListener(event blueprint.ProgressEvent) {
	switch event.Type {
	case blueprint.EventProcessorComplete:
		icon := "✓"
		if event.Status.IsFail() {
			icon = "✗"
		}
		fmt.Printf("%s [%d/%d] %s\n", icon, event.Index+1, event.Total, event.Processor)
	case blueprint.EventProcessorSkipped:
		fmt.Printf("- [%d/%d] %s (skipped)\n", event.Index+1, event.Total, event.Processor)
	}
}
