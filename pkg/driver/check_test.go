package driver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"zygr/frontend-go/pkg/diagnostics"
)

func TestCheckFilesPreservesInputOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 8; i++ {
		path := filepath.Join(dir, fmt.Sprintf("unit%d.ts", i))
		source := fmt.Sprintf("let v%d = %d;", i, i)
		if i%2 == 1 {
			source = fmt.Sprintf("let v%d: string = %d;", i, i)
		}
		writeFile(t, path, source)
		paths = append(paths, path)
	}

	units, err := CheckFiles(context.Background(), paths, CheckOptions{Jobs: 3})
	if err != nil {
		t.Fatalf("check files: %v", err)
	}
	if len(units) != len(paths) {
		t.Fatalf("expected %d units, got %d", len(paths), len(units))
	}
	for i, unit := range units {
		if unit.Path != paths[i] {
			t.Fatalf("unit %d: expected %s, got %s", i, paths[i], unit.Path)
		}
		wantErrors := i%2 == 1
		if unit.HasErrors() != wantErrors {
			t.Fatalf("unit %d: expected errors=%v, got %v", i, wantErrors, unit.Errors())
		}
	}
}

func TestCheckFilesRecordsReadFailures(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.ts")
	writeFile(t, good, "let ok = 1;")
	missing := filepath.Join(dir, "missing.ts")

	units, err := CheckFiles(context.Background(), []string{missing, good}, CheckOptions{})
	if err != nil {
		t.Fatalf("check files: %v", err)
	}
	errs := units[0].Errors()
	if len(errs) != 1 || errs[0].Kind != diagnostics.KindIOFailure {
		t.Fatalf("expected a single io-failure, got %v", errs)
	}
	want := fmt.Sprintf("io: cannot read %s: no such file or directory", missing)
	if errs[0].Message != want {
		t.Fatalf("unexpected message %q", errs[0].Message)
	}
	if errs[0].Row != 1 || errs[0].Col != 1 {
		t.Fatalf("unexpected position %d:%d", errs[0].Row, errs[0].Col)
	}
	if units[1].HasErrors() {
		t.Fatalf("expected the readable unit to check cleanly, got %v", units[1].Errors())
	}
}

func TestCheckFilesHonoursCancellation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.ts")
	writeFile(t, path, "let a = 1;")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	units, err := CheckFiles(ctx, []string{path, path, path}, CheckOptions{Jobs: 1})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(units) != 3 {
		t.Fatalf("expected a slot per path, got %d", len(units))
	}
}

func TestCheckFilesWithNoPaths(t *testing.T) {
	units, err := CheckFiles(context.Background(), nil, CheckOptions{Jobs: 4})
	if err != nil || len(units) != 0 {
		t.Fatalf("expected no units and no error, got %v, %v", units, err)
	}
}
