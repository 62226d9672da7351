package driver

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func TestCollectSourcesHonoursIncludeAndExclude(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{
		"main.ts",
		"lib/util.js",
		"lib/types.d.ts",
		"lib/readme.md",
		"node_modules/dep/index.js",
		".git/hooks/pre-commit.js",
	} {
		writeFile(t, filepath.Join(root, filepath.FromSlash(rel)), "let a = 1;")
	}
	cfg := DefaultConfig()
	cfg.Exclude = []string{"node_modules", "*.d.ts"}

	files, err := CollectSources(root, cfg)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	want := []string{
		filepath.Join(root, "lib", "util.js"),
		filepath.Join(root, "main.ts"),
	}
	if len(files) != len(want) {
		t.Fatalf("expected %v, got %v", want, files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, files)
		}
	}
}

func TestCollectSourcesSingleFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "one.ts")
	writeFile(t, path, "let a = 1;")
	files, err := CollectSources(path, nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(files) != 1 || files[0] != path {
		t.Fatalf("expected [%s], got %v", path, files)
	}
	if _, err := CollectSources(filepath.Join(root, "absent"), nil); err == nil {
		t.Fatalf("expected an error for a missing root")
	}
}

func TestChangedSourcesReportsModifiedAndUntracked(t *testing.T) {
	root := t.TempDir()
	repo, err := git.PlainInit(root, false)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	writeFile(t, filepath.Join(root, "a.ts"), "let a = 1;")
	writeFile(t, filepath.Join(root, "d.ts"), "let d = 1;")
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}
	for _, name := range []string{"a.ts", "d.ts"} {
		if _, err := worktree.Add(name); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}
	_, err = worktree.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "zygr", Email: "zygr@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	writeFile(t, filepath.Join(root, "a.ts"), "let a = 2;\nlet more = 3;")
	writeFile(t, filepath.Join(root, "src", "b.ts"), "let b = 1;")
	writeFile(t, filepath.Join(root, "notes.md"), "changed")

	files, err := ChangedSources(filepath.Join(root, "src"), DefaultConfig())
	if err != nil {
		t.Fatalf("changed sources: %v", err)
	}
	want := []string{
		filepath.Join(root, "a.ts"),
		filepath.Join(root, "src", "b.ts"),
	}
	if len(files) != len(want) {
		t.Fatalf("expected %v, got %v", want, files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, files)
		}
	}
}

func TestChangedSourcesOutsideRepository(t *testing.T) {
	_, err := ChangedSources(t.TempDir(), nil)
	if !errors.Is(err, ErrNotRepository) {
		t.Fatalf("expected ErrNotRepository, got %v", err)
	}
}
