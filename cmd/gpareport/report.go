package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/gpareport/internal/config"
	"github.com/dshills/gpareport/internal/dataset"
	"github.com/dshills/gpareport/internal/logging"
	"github.com/dshills/gpareport/internal/profile"
	"github.com/dshills/gpareport/internal/render"
	"github.com/dshills/gpareport/internal/report"
	"github.com/dshills/gpareport/internal/schema"
)

type reportFlags struct {
	check             bool
	failOnDiagnostics bool
}

func newReportCmd(configFile *string) *cobra.Command {
	f := &reportFlags{}
	cmd := &cobra.Command{
		Use:   "report <data-file>",
		Short: "Compute the academic summary of a grade sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags(), *configFile)
			if err != nil {
				return exitError(3, "failed to load config: %v", err)
			}
			logger := logging.New(os.Stderr, cfg.Verbose)
			defer logger.Sync()
			return runReport(args[0], cfg, f, cmd.OutOrStdout(), logger.Sugar())
		},
	}

	flags := cmd.Flags()
	flags.String("format", "json", "Output format: json or md")
	flags.String("out", "", "Output file path (default: stdout)")
	flags.String("profile", profile.Default, "Column profile name")
	flags.String("credit-policy", "all", "Credits of ungraded rows: all (count them) or graded (skip them)")
	flags.String("semester-order", "first-seen", "Semester order: first-seen or natural")
	flags.Bool("verbose", false, "Print processing steps to stderr")
	flags.BoolVar(&f.check, "check", false, "Verify report consistency before writing it")
	flags.BoolVar(&f.failOnDiagnostics, "fail-on-diagnostics", false, "Exit non-zero if any input row raised a diagnostic")

	return cmd
}

func runReport(dataPath string, cfg *config.Config, f *reportFlags, stdout io.Writer, log *zap.SugaredLogger) error {
	if err := cfg.Validate(); err != nil {
		return exitError(3, "invalid configuration: %v", err)
	}
	opts, _ := cfg.Options()

	// 1. Load profile
	log.Debugf("Loading profile: %s", cfg.Profile)
	prof, err := profile.LoadBuiltin(cfg.Profile)
	if err != nil {
		return exitError(3, "failed to load profile: %v", err)
	}

	// 2. Load and validate data
	log.Debugf("Loading data: %s", dataPath)
	ds, err := dataset.Load(dataPath, prof.Layout())
	if err != nil {
		if errors.Is(err, dataset.ErrDataSourceNotFound) {
			return exitError(3, "data file %s not found or unreadable: %v", dataPath, err)
		}
		return exitError(3, "failed to load data: %v", err)
	}
	log.Debugf("Loaded %d rows", len(ds.Records))
	warnDiagnostics(log, ds.Diagnostics)

	// 3. Score, aggregate, distribute
	rep := report.Build(ds, opts)
	rep.Version = version
	rep.Input.Profile = prof.Name
	log.Debugf("Computed %d semesters, cumulative GPA %.2f", len(rep.Semesters), rep.Cumulative.CumulativeGPA)

	// 4. Consistency check
	if f.check {
		if errs := schema.Validate(rep); len(errs) > 0 {
			for _, e := range errs {
				log.Errorf("consistency: %s", e)
			}
			return exitError(5, "report failed consistency check (%d errors)", len(errs))
		}
		log.Debugf("Consistency check passed")
	}

	// 5. Output
	var output string
	switch cfg.Format {
	case "json":
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		output = string(data) + "\n"
	case "md":
		output = render.Markdown(rep)
	}

	if cfg.Out != "" {
		log.Debugf("Writing output to %s", cfg.Out)
		if err := os.WriteFile(cfg.Out, []byte(output), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		fmt.Fprint(stdout, output)
	}

	// 6. Exit code for diagnostics
	if f.failOnDiagnostics && !ds.Diagnostics.Empty() {
		return exitError(2, "input has diagnostics: %s", summarizeDiagnostics(ds.Diagnostics))
	}
	return nil
}

func warnDiagnostics(log *zap.SugaredLogger, d dataset.Diagnostics) {
	if len(d.MissingColumns) > 0 {
		log.Warnf("Missing columns: %v", d.MissingColumns)
	}
	if len(d.UnknownGrades) > 0 {
		log.Warnf("Invalid grades found: %v", d.UnknownGrades)
	}
	if d.MissingGradeCount > 0 {
		log.Warnf("Missing grades found in %d rows", d.MissingGradeCount)
	}
	if d.InvalidCreditsCount > 0 {
		log.Warnf("Invalid credit values found in %d rows", d.InvalidCreditsCount)
	}
}

func summarizeDiagnostics(d dataset.Diagnostics) string {
	return fmt.Sprintf("%d unknown grades, %d missing grades, %d invalid credits, %d missing columns",
		len(d.UnknownGrades), d.MissingGradeCount, d.InvalidCreditsCount, len(d.MissingColumns))
}
