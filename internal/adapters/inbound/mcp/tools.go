package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/archgate/archgate/internal/adapters/outbound/config"
	"github.com/archgate/archgate/internal/adapters/outbound/gitinfo"
	"github.com/archgate/archgate/internal/adapters/outbound/history"
	"github.com/archgate/archgate/internal/adapters/outbound/linter"
	"github.com/archgate/archgate/internal/adapters/outbound/parser"
	"github.com/archgate/archgate/internal/adapters/outbound/scanner"
	"github.com/archgate/archgate/internal/adapters/outbound/specrunner"
	"github.com/archgate/archgate/internal/application"
	"github.com/archgate/archgate/internal/domain"
	"github.com/archgate/archgate/internal/domain/rules"
)

// registerTools registers all archgate MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. archgate_audit
	s.AddTool(
		mcplib.NewTool("archgate_audit",
			mcplib.WithDescription("Run the full boundary audit and return the report as JSON"),
		),
		handleAudit(projectPath),
	)

	// 2. archgate_check_file
	s.AddTool(
		mcplib.NewTool("archgate_check_file",
			mcplib.WithDescription("Returns every violation found for a single file in the project"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Relative path to the file to check"),
			),
		),
		handleCheckFile(projectPath),
	)

	// 3. archgate_lattice
	s.AddTool(
		mcplib.NewTool("archgate_lattice",
			mcplib.WithDescription("Returns the effective boundary lattice: which layers each layer may depend on"),
		),
		handleLattice(projectPath),
	)

	// 4. archgate_graph
	s.AddTool(
		mcplib.NewTool("archgate_graph",
			mcplib.WithDescription("Returns the layer-level dependency edges with allowed/denied marks"),
		),
		handleGraph(projectPath),
	)
}

// newAuditService creates the standard set of outbound adapters and the
// audit service wired with them.
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

func handleAudit(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		svc := newAuditService()
		report, err := svc.Audit(ctx, projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("audit failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleCheckFile(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		svc := newAuditService()
		data, err := svc.Analyze(ctx, projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("analysis failed: %v", err)), nil
		}

		type fileViolations struct {
			File       string             `json:"file"`
			Violations []domain.Violation `json:"violations"`
		}

		result := fileViolations{File: file, Violations: []domain.Violation{}}
		for _, v := range svc.CollectViolations(ctx, data) {
			if v.File == file || strings.HasSuffix(v.File, "/"+file) {
				result.Violations = append(result.Violations, v)
			}
		}

		return jsonResult(result)
	}
}

func handleLattice(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		cfg, err := config.New().Load(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading config failed: %v", err)), nil
		}

		lattice := cfg.BuildLattice()
		out := make(map[string][]domain.Layer, len(domain.Layers))
		for _, layer := range domain.Layers {
			out[string(layer)] = lattice.AllowedFor(layer)
		}
		return jsonResult(out)
	}
}

func handleGraph(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		svc := newAuditService()
		data, err := svc.Analyze(ctx, projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("analysis failed: %v", err)), nil
		}

		edges := rules.LayerEdges(data.Lattice, data.Layers, data.Edges, data.Config)

		type graphOutput struct {
			Files  int                `json:"files"`
			Edges  int                `json:"edges"`
			Layers []domain.LayerEdge `json:"layer_edges"`
		}
		return jsonResult(graphOutput{
			Files:  len(data.Records),
			Edges:  len(data.Edges),
			Layers: edges,
		})
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
