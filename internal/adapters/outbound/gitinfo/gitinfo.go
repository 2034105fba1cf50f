// Package gitinfo resolves the commit hash stamped on audit history entries.
package gitinfo

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// Resolver implements domain.GitInfo with go-git. Repository detection walks
// up from the project path, so auditing a subdirectory of a repository still
// records the enclosing commit.
type Resolver struct{}

func New() *Resolver {
	return &Resolver{}
}

func (r *Resolver) open(projectPath string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(projectPath, &git.PlainOpenOptions{DetectDotGit: true})
}

func (r *Resolver) IsGitRepo(projectPath string) bool {
	_, err := r.open(projectPath)
	return err == nil
}

// CommitHash returns the full hash of HEAD for the repository enclosing
// projectPath.
func (r *Resolver) CommitHash(projectPath string) (string, error) {
	repo, err := r.open(projectPath)
	if err != nil {
		return "", fmt.Errorf("opening repository at %s: %w", projectPath, err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolving HEAD: %w", err)
	}

	return head.Hash().String(), nil
}
