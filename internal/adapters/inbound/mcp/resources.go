package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/archgate/archgate/internal/adapters/outbound/config"
	"github.com/archgate/archgate/internal/domain"
)

// registerResources registers all archgate MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string) {
	// 1. archgate://report - current audit report
	s.AddResource(
		mcplib.NewResource(
			"archgate://report",
			"Audit Report",
			mcplib.WithResourceDescription("Current boundary audit report for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleReportResource(projectPath),
	)

	// 2. archgate://lattice - effective boundary lattice
	s.AddResource(
		mcplib.NewResource(
			"archgate://lattice",
			"Boundary Lattice",
			mcplib.WithResourceDescription("Effective boundary lattice including project allow additions"),
			mcplib.WithMIMEType("application/json"),
		),
		handleLatticeResource(projectPath),
	)
}

func handleReportResource(projectPath string) server.ResourceHandlerFunc {
	return func(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		svc := newAuditService()
		report, err := svc.Audit(ctx, projectPath)
		if err != nil {
			return nil, fmt.Errorf("audit failed: %w", err)
		}

		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling report: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "archgate://report",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleLatticeResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := config.New().Load(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading config failed: %w", err)
		}

		lattice := cfg.BuildLattice()
		out := make(map[string][]domain.Layer, len(domain.Layers))
		for _, layer := range domain.Layers {
			out[string(layer)] = lattice.AllowedFor(layer)
		}

		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling lattice: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "archgate://lattice",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
