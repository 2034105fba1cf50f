package scanner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archgate/archgate/internal/adapters/outbound/scanner"
	"github.com/archgate/archgate/internal/domain"
)

const fixtureDir = "../../../../testdata/ts-clean/perfect"

func TestScan_PerfectFixture(t *testing.T) {
	s := scanner.New()
	scan, err := s.Scan(fixtureDir, domain.DefaultConfig())
	require.NoError(t, err)

	assert.True(t, scan.HasPackageJSON)
	assert.True(t, scan.HasFeaturesDir)
	assert.Contains(t, scan.SourceFiles, "src/index.ts")
	assert.Contains(t, scan.SourceFiles, "src/domain/task.ts")
	assert.Contains(t, scan.FeatureFiles, "features/task.feature")
	assert.Contains(t, scan.StepFiles, "features/steps/task.steps.ts")
	assert.NotContains(t, scan.SourceFiles, "features/steps/task.steps.ts")
}

func TestScan_SkipsVendorAndBuildDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/domain/task.ts", "export class Task {}")
	writeFile(t, dir, "node_modules/zod/index.ts", "")
	writeFile(t, dir, "dist/index.ts", "")
	writeFile(t, dir, "coverage/report.ts", "")
	writeFile(t, dir, ".archgate/history/runs.json", "[]")

	s := scanner.New()
	scan, err := s.Scan(dir, domain.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{"src/domain/task.ts"}, scan.SourceFiles)
}

func TestScan_ExcludePathsFromConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/domain/task.ts", "export class Task {}")
	writeFile(t, dir, "src/generated/api.ts", "export const api = 1;")

	cfg := domain.DefaultConfig()
	cfg.ExcludePaths = []string{"src/generated/"}

	s := scanner.New()
	scan, err := s.Scan(dir, cfg)
	require.NoError(t, err)

	assert.Contains(t, scan.SourceFiles, "src/domain/task.ts")
	assert.NotContains(t, scan.SourceFiles, "src/generated/api.ts")
}

func TestScan_NoFeaturesDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/index.ts", "export const x = 1;\nconsole.log(x);")

	s := scanner.New()
	scan, err := s.Scan(dir, domain.DefaultConfig())
	require.NoError(t, err)

	assert.False(t, scan.HasFeaturesDir)
	assert.Empty(t, scan.FeatureFiles)
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	fp := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(fp), 0755))
	require.NoError(t, os.WriteFile(fp, []byte(content), 0644))
}
