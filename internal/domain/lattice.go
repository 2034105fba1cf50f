package domain

import "strings"

// BoundaryLattice maps each layer to the set of layers it may depend on.
// The lattice is static configuration, never inferred from the codebase:
// it is the one invariant the whole tool exists to enforce. Every layer has
// an explicit entry; anything absent is denied.
type BoundaryLattice struct {
	allowed map[Layer]map[Layer]bool
	// denyExternal lists external package specifiers denied per layer.
	// The domain layer denies ALL externals regardless of this list.
	denyExternal map[Layer][]string
}

// DefaultLattice returns the canonical Clean Architecture lattice:
//
//	domain         -> domain
//	application    -> application, domain
//	infrastructure -> infrastructure, application, domain
//	mcp            -> mcp, application, di
//	di             -> di, application, infrastructure, mcp
//	entry          -> entry, di, mcp
func DefaultLattice() *BoundaryLattice {
	l := &BoundaryLattice{
		allowed:      make(map[Layer]map[Layer]bool, len(Layers)),
		denyExternal: make(map[Layer][]string),
	}
	l.set(LayerDomain, LayerDomain)
	l.set(LayerApplication, LayerApplication, LayerDomain)
	l.set(LayerInfrastructure, LayerInfrastructure, LayerApplication, LayerDomain)
	l.set(LayerMCP, LayerMCP, LayerApplication, LayerDI)
	l.set(LayerDI, LayerDI, LayerApplication, LayerInfrastructure, LayerMCP)
	l.set(LayerEntry, LayerEntry, LayerDI, LayerMCP)
	return l
}

func (l *BoundaryLattice) set(from Layer, to ...Layer) {
	m := make(map[Layer]bool, len(to))
	for _, t := range to {
		m[t] = true
	}
	l.allowed[from] = m
}

// Allow adds an extra allowed edge on top of the defaults. Used for
// project-level configuration overrides; the default entries are never
// removed.
func (l *BoundaryLattice) Allow(from, to Layer) {
	if l.allowed[from] == nil {
		l.allowed[from] = make(map[Layer]bool)
	}
	l.allowed[from][to] = true
}

// Allows reports whether an edge from one layer to another is permitted.
// Self-imports are always allowed; everything not explicitly listed is
// denied.
func (l *BoundaryLattice) Allows(from, to Layer) bool {
	if from == to {
		return true
	}
	return l.allowed[from][to]
}

// AllowedFor returns the allowed destination set for a layer in lattice
// order, for display surfaces.
func (l *BoundaryLattice) AllowedFor(from Layer) []Layer {
	var out []Layer
	for _, to := range Layers {
		if l.Allows(from, to) {
			out = append(out, to)
		}
	}
	return out
}

// DenyExternal adds package specifiers to a layer's external denylist.
func (l *BoundaryLattice) DenyExternal(layer Layer, packages ...string) {
	l.denyExternal[layer] = append(l.denyExternal[layer], packages...)
}

// ExternalDenied reports whether a layer may not import the given external
// package. The domain layer must have zero third-party dependencies, so for
// it every external package is denied; other layers consult their explicit
// denylist.
func (l *BoundaryLattice) ExternalDenied(layer Layer, pkg string) bool {
	if layer == LayerDomain {
		return true
	}
	root := packageRoot(pkg)
	for _, denied := range l.denyExternal[layer] {
		if pkg == denied || root == denied {
			return true
		}
	}
	return false
}

// packageRoot strips a subpath from an external specifier, keeping the
// scope for scoped packages: "@scope/pkg/sub" -> "@scope/pkg", "zod/v4" -> "zod".
func packageRoot(pkg string) string {
	parts := strings.Split(pkg, "/")
	if parts[0] != "" && parts[0][0] == '@' && len(parts) >= 2 {
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}
