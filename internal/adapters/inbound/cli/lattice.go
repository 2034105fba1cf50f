package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archgate/archgate/internal/adapters/outbound/config"
	"github.com/archgate/archgate/internal/adapters/outbound/tui"
	"github.com/archgate/archgate/internal/domain"
)

func newLatticeCmd() *cobra.Command {
	var (
		jsonOutput bool
		path       string
	)

	cmd := &cobra.Command{
		Use:   "lattice",
		Short: "Print the effective boundary lattice",
		Long:  "Show which layers each layer may depend on, including any project-level allow additions from .archgate.yaml. The lattice is explicit configuration, never inferred from the codebase.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New().Load(path)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			lattice := cfg.BuildLattice()

			if jsonOutput {
				out := make(map[string][]domain.Layer, len(domain.Layers))
				for _, layer := range domain.Layers {
					out[string(layer)] = lattice.AllowedFor(layer)
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderLattice(lattice))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the lattice as JSON")
	cmd.Flags().StringVar(&path, "path", ".", "Project path whose config to load")
	return cmd
}
