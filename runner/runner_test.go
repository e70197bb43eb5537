package runner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shadowCow/lalrgen/lexergen"
)

func writeGrammar(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("writing %q: %v", path, err)
	}
	return path
}

func TestRunWellFormedGrammarExportsSuccessfully(t *testing.T) {
	dir := t.TempDir()
	path := writeGrammar(t, dir, "expr.gram", `
		goal E ;
		<< '+' ;
		<< '*' ;
		E : E '+' E | E '*' E | 'n' ;
	`)
	out := filepath.Join(dir, "expr.xml")

	code, diags, err := Run(Config{GrammarPath: path, OutputPath: out, Mode: lexergen.ModeSingle})
	if err != nil {
		t.Fatalf("Run: %v (diagnostics: %v)", err, diags)
	}
	if code != ExitOK {
		t.Fatalf("expected exit code %d, got %d", ExitOK, code)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected %q to be written: %v", out, err)
	}
}

func TestRunUndefinedSymbolReturnsUserError(t *testing.T) {
	dir := t.TempDir()
	path := writeGrammar(t, dir, "bad.gram", `
		goal S ;
		S : NeverDeclared ;
	`)
	code, _, err := Run(Config{GrammarPath: path, Mode: lexergen.ModeSingle})
	if err == nil {
		t.Fatal("expected an error for a grammar referencing an undefined nonterminal")
	}
	if code != ExitUserError {
		t.Errorf("expected exit code %d, got %d", ExitUserError, code)
	}
}

func TestRunFileNotFoundReturnsUserError(t *testing.T) {
	code, _, err := Run(Config{GrammarPath: "/nonexistent/grammar.gram"})
	if err == nil {
		t.Fatal("expected an error for a missing grammar file")
	}
	if code != ExitUserError {
		t.Errorf("expected exit code %d, got %d", ExitUserError, code)
	}
}

func TestRunScannerlessModeExportsSuccessfully(t *testing.T) {
	dir := t.TempDir()
	path := writeGrammar(t, dir, "list.gram", `
		goal L ;
		L : L 'x' | 'x' ;
	`)
	out := filepath.Join(dir, "list.xml")

	code, diags, err := Run(Config{GrammarPath: path, OutputPath: out, Mode: lexergen.ModeScannerless})
	if err != nil {
		t.Fatalf("Run: %v (diagnostics: %v)", err, diags)
	}
	if code != ExitOK {
		t.Fatalf("expected exit code %d, got %d", ExitOK, code)
	}
}
