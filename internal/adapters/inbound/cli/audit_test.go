package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archgate/archgate/internal/adapters/inbound/cli"
	"github.com/archgate/archgate/internal/domain"
)

const (
	perfectDir    = "../../../../testdata/ts-clean/perfect"
	violationsDir = "../../../../testdata/ts-clean/violations"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func cleanHistory(t *testing.T, dir string) {
	t.Cleanup(func() { os.RemoveAll(filepath.Join(dir, ".archgate")) })
}

func TestAuditCommand_PassingProject(t *testing.T) {
	cleanHistory(t, perfectDir)

	out, err := run(t, "audit", perfectDir)
	require.NoError(t, err)
	assert.Contains(t, out, "PASS")
}

func TestAuditCommand_FailingProject(t *testing.T) {
	cleanHistory(t, violationsDir)

	out, err := run(t, "audit", violationsDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "violations found")
	assert.Contains(t, out, "FAIL")
}

func TestAuditCommand_JSONOutput(t *testing.T) {
	cleanHistory(t, violationsDir)

	out, err := run(t, "audit", violationsDir, "--json")
	require.Error(t, err)

	var rep domain.RunReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.False(t, rep.Passed)
	assert.Greater(t, rep.Total, 0)
	assert.NotEmpty(t, rep.Groups)
}

func TestGraphCommand_JSONOutput(t *testing.T) {
	out, err := run(t, "graph", perfectDir, "--json")
	require.NoError(t, err)

	var payload struct {
		Files  int                `json:"files"`
		Edges  int                `json:"edges"`
		Denied int                `json:"denied"`
		Layers []domain.LayerEdge `json:"layer_edges"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Greater(t, payload.Files, 0)
	assert.Greater(t, payload.Edges, 0)
	assert.Equal(t, 0, payload.Denied)
	assert.NotEmpty(t, payload.Layers)
}

func TestLatticeCommand_JSONOutput(t *testing.T) {
	out, err := run(t, "lattice", "--json")
	require.NoError(t, err)

	var lattice map[string][]string
	require.NoError(t, json.Unmarshal([]byte(out), &lattice))
	assert.ElementsMatch(t, []string{"domain"}, lattice["domain"])
	assert.ElementsMatch(t, []string{"domain", "application"}, lattice["application"])
}

func TestHistoryCommand_EmptyHistory(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "history", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No audit history found.")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "archgate")
}

func TestAuditCommand_SamplesFlag(t *testing.T) {
	cleanHistory(t, violationsDir)

	out, err := run(t, "audit", violationsDir, "--json", "--samples", "1")
	require.Error(t, err)

	var rep domain.RunReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	for _, g := range rep.Groups {
		assert.LessOrEqual(t, len(g.Sample), 1)
	}
}
