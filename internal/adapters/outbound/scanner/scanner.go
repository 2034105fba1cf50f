package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/archgate/archgate/internal/domain"
)

var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"build":        true,
	"coverage":     true,
	".archgate":    true,
}

// FileScanner implements domain.ProjectScanner by walking the filesystem.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

func (s *FileScanner) Scan(projectPath string, cfg domain.ProjectConfig) (*domain.ScanResult, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, err
	}

	extraSkip := make(map[string]bool, len(cfg.ExcludePaths))
	for _, p := range cfg.ExcludePaths {
		extraSkip[strings.TrimSuffix(p, "/")] = true
	}

	featuresDir := strings.Trim(cfg.FeaturesDir, "/")

	result := &domain.ScanResult{RootPath: absPath}

	err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, _ := filepath.Rel(absPath, path)
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if skipDirs[d.Name()] || extraSkip[relPath] || extraSkip[d.Name()] {
				return filepath.SkipDir
			}
			if relPath == featuresDir {
				result.HasFeaturesDir = true
			}
			return nil
		}

		result.AllFiles = append(result.AllFiles, relPath)

		switch {
		case d.Name() == "package.json" && filepath.Dir(relPath) == ".":
			result.HasPackageJSON = true
		case strings.HasSuffix(d.Name(), ".feature"):
			result.FeatureFiles = append(result.FeatureFiles, relPath)
		case strings.HasPrefix(relPath, featuresDir+"/") &&
			(strings.HasSuffix(d.Name(), ".ts") || strings.HasSuffix(d.Name(), ".js")):
			result.StepFiles = append(result.StepFiles, relPath)
		case strings.HasSuffix(d.Name(), ".ts") || strings.HasSuffix(d.Name(), ".tsx"):
			result.SourceFiles = append(result.SourceFiles, relPath)
		}

		return nil
	})

	return result, err
}
