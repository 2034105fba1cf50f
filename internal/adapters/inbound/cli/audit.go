package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archgate/archgate/internal/adapters/outbound/config"
	"github.com/archgate/archgate/internal/adapters/outbound/gitinfo"
	"github.com/archgate/archgate/internal/adapters/outbound/history"
	"github.com/archgate/archgate/internal/adapters/outbound/linter"
	"github.com/archgate/archgate/internal/adapters/outbound/parser"
	"github.com/archgate/archgate/internal/adapters/outbound/scanner"
	"github.com/archgate/archgate/internal/adapters/outbound/specrunner"
	"github.com/archgate/archgate/internal/adapters/outbound/tui"
	"github.com/archgate/archgate/internal/application"
	"github.com/archgate/archgate/internal/domain"
)

func newAuditService() *application.AuditService {
	return application.NewAuditService(
		scanner.New(),
		parser.New(),
		config.New(),
		linter.New(),
		specrunner.New(),
		gitinfo.New(),
		history.New(),
	)
}

func newAuditCmd() *cobra.Command {
	var (
		jsonOutput bool
		samples    int
	)

	cmd := &cobra.Command{
		Use:   "audit [path]",
		Short: "Audit a project against its boundary lattice",
		Long:  "Run every boundary and structural-conformance check against the project and exit non-zero when any violation exists. There is no partial success: the gate is binary.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			svc := newAuditService()
			report, err := svc.AuditWithSamples(cmd.Context(), path, samples)
			if err != nil {
				return fmt.Errorf("audit failed: %w", err)
			}

			if jsonOutput {
				if err := renderReportJSON(cmd, report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			}

			if !report.Passed {
				return fmt.Errorf("%d violations found", report.Total)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")
	cmd.Flags().IntVar(&samples, "samples", 0, "Override the per-rule violation sample bound")

	return cmd
}

func renderReportJSON(cmd *cobra.Command, report *domain.RunReport) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
