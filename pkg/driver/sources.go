package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-git/go-git/v5"
)

// CollectSources walks root and returns every file matching cfg's include
// and exclude rules, sorted. Excluded directories are not descended into.
// A root that names a file is returned as-is when it matches.
func CollectSources(root string, cfg *Config) ([]string, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("driver: stat %s: %w", root, err)
	}
	if !info.IsDir() {
		if cfg.Matches(root) {
			return []string{root}, nil
		}
		return nil, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && (d.Name() == ".git" || cfg.Excluded(rel)) {
				return filepath.SkipDir
			}
			return nil
		}
		if cfg.Matches(rel) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("driver: traverse %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// ErrNotRepository is returned by ChangedSources outside a git worktree.
var ErrNotRepository = errors.New("driver: not a git repository")

// ChangedSources returns the sources in the git worktree containing dir that
// are modified, added or untracked, as sorted absolute paths. Deleted files
// are skipped.
func ChangedSources(dir string, cfg *Config) ([]string, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotRepository, dir)
		}
		return nil, fmt.Errorf("driver: open repository %s: %w", dir, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("driver: worktree %s: %w", dir, err)
	}
	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("driver: status %s: %w", dir, err)
	}

	root := worktree.Filesystem.Root()
	var files []string
	for rel, st := range status {
		if st.Worktree == git.Deleted || st.Staging == git.Deleted {
			continue
		}
		if st.Worktree == git.Unmodified && st.Staging == git.Unmodified {
			continue
		}
		if !cfg.Matches(rel) {
			continue
		}
		files = append(files, filepath.Join(root, filepath.FromSlash(rel)))
	}
	sort.Strings(files)
	return files, nil
}
