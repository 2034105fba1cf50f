package rules

import (
	"fmt"

	"github.com/archgate/archgate/internal/domain"
)

// CheckBoundaries evaluates every import edge against the boundary lattice.
// Edges from unclassified files are skipped; edges to unclassified targets
// are allowed only for recognized non-code artifacts and otherwise fall to
// the default-deny rule. The domain layer's external-import ban is enforced
// independently of the lattice, so it fires even when no inter-layer rule
// applies.
func CheckBoundaries(
	lattice *domain.BoundaryLattice,
	layers map[string]domain.Layer,
	edges []domain.ImportEdge,
	cfg domain.ProjectConfig,
) []domain.Violation {
	var violations []domain.Violation

	for _, edge := range edges {
		fromLayer, ok := layers[edge.FromFile]
		if !ok || fromLayer == domain.LayerUnclassified {
			continue
		}

		if edge.Kind == domain.TargetExternal {
			if lattice.ExternalDenied(fromLayer, edge.Target) {
				violations = append(violations, domain.NewViolation(
					domain.RuleExternalDependency, edge.FromFile, edge.Line,
					fmt.Sprintf("layer %s may not import external package %q", fromLayer, edge.Target),
				))
			}
			continue
		}

		toLayer := layers[edge.Target]
		if toLayer == "" {
			toLayer = domain.ClassifyPath(edge.Target, cfg.SourceRoot)
		}

		if toLayer == domain.LayerUnclassified {
			if domain.IsNonCodeArtifact(edge.Target) {
				continue
			}
			violations = append(violations, domain.NewViolation(
				domain.RuleBoundaryViolation, edge.FromFile, edge.Line,
				fmt.Sprintf("layer %s may not import unclassified path %q (default deny)", fromLayer, edge.Target),
			))
			continue
		}

		if !lattice.Allows(fromLayer, toLayer) {
			violations = append(violations, domain.NewViolation(
				domain.RuleBoundaryViolation, edge.FromFile, edge.Line,
				fmt.Sprintf("layer %s may not import layer %s (%s)", fromLayer, toLayer, edge.Target),
			))
		}
	}

	return violations
}

// LayerEdges aggregates import edges into layer-level dependency counts for
// the graph surfaces. External edges are excluded.
func LayerEdges(
	lattice *domain.BoundaryLattice,
	layers map[string]domain.Layer,
	edges []domain.ImportEdge,
	cfg domain.ProjectConfig,
) []domain.LayerEdge {
	type key struct{ from, to domain.Layer }
	counts := make(map[key]int)

	for _, edge := range edges {
		if edge.Kind != domain.TargetInternal {
			continue
		}
		from, ok := layers[edge.FromFile]
		if !ok || from == domain.LayerUnclassified {
			continue
		}
		to := layers[edge.Target]
		if to == "" {
			to = domain.ClassifyPath(edge.Target, cfg.SourceRoot)
		}
		if to == domain.LayerUnclassified {
			continue
		}
		counts[key{from, to}]++
	}

	var out []domain.LayerEdge
	for _, from := range domain.Layers {
		for _, to := range domain.Layers {
			if n := counts[key{from, to}]; n > 0 {
				out = append(out, domain.LayerEdge{
					From:    from,
					To:      to,
					Count:   n,
					Allowed: lattice.Allows(from, to),
				})
			}
		}
	}
	return out
}
