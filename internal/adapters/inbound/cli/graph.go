package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archgate/archgate/internal/adapters/outbound/tui"
	"github.com/archgate/archgate/internal/application"
	"github.com/archgate/archgate/internal/domain"
	"github.com/archgate/archgate/internal/domain/rules"
)

func newGraphCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "graph [path]",
		Short: "Show layer-level dependency edges",
		Long:  "Aggregate the project's internal import edges by layer pair and mark each pair as allowed or denied by the boundary lattice.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			svc := newAuditService()
			data, err := svc.Analyze(cmd.Context(), path)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			edges := rules.LayerEdges(data.Lattice, data.Layers, data.Edges, data.Config)

			if jsonOutput {
				return renderGraphJSON(cmd, data, edges)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderGraph(edges))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output layer edges as JSON")
	return cmd
}

type graphJSONOutput struct {
	Files  int                `json:"files"`
	Edges  int                `json:"edges"`
	Denied int                `json:"denied"`
	Layers []domain.LayerEdge `json:"layer_edges"`
}

func renderGraphJSON(cmd *cobra.Command, data *application.ProjectData, edges []domain.LayerEdge) error {
	denied := 0
	for _, e := range edges {
		if !e.Allowed {
			denied++
		}
	}
	out := graphJSONOutput{
		Files:  len(data.Records),
		Edges:  len(data.Edges),
		Denied: denied,
		Layers: edges,
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
