package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shadowCow/lalrgen/runner"
)

func writeGrammar(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("writing %q: %v", path, err)
	}
	return path
}

func TestCLIExportsWellFormedGrammar(t *testing.T) {
	dir := t.TempDir()
	path := writeGrammar(t, dir, "s.gram", `
		goal S ;
		S : 'a' | ;
	`)
	var stdout, stderr bytes.Buffer
	code := Run(Config{
		Args:   []string{"lalrgen", path},
		Stdout: &stdout,
		Stderr: &stderr,
	})
	if code != runner.ExitOK {
		t.Fatalf("expected exit code %d, got %d (stderr: %s)", runner.ExitOK, code, stderr.String())
	}
}

func TestCLIMissingFileArgument(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run(Config{
		Args:   []string{"lalrgen"},
		Stdout: &stdout,
		Stderr: &stderr,
	})
	if code != runner.ExitUserError {
		t.Errorf("expected exit code %d, got %d", runner.ExitUserError, code)
	}
	if !strings.Contains(stderr.String(), "usage:") {
		t.Errorf("expected a usage message on stderr, got: %q", stderr.String())
	}
}

func TestCLIFileNotFound(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run(Config{
		Args:   []string{"lalrgen", "nonexistent.gram"},
		Stdout: &stdout,
		Stderr: &stderr,
	})
	if code != runner.ExitUserError {
		t.Errorf("expected exit code %d, got %d", runner.ExitUserError, code)
	}
	if !strings.Contains(stderr.String(), "nonexistent.gram") {
		t.Errorf("expected stderr to mention the missing file, got: %q", stderr.String())
	}
}

func TestCLIScannerlessFlag(t *testing.T) {
	dir := t.TempDir()
	path := writeGrammar(t, dir, "list.gram", `
		goal L ;
		L : L 'x' | 'x' ;
	`)
	var stdout, stderr bytes.Buffer
	code := Run(Config{
		Args:   []string{"lalrgen", "--scannerless", path},
		Stdout: &stdout,
		Stderr: &stderr,
	})
	if code != runner.ExitOK {
		t.Fatalf("expected exit code %d, got %d (stderr: %s)", runner.ExitOK, code, stderr.String())
	}
}
