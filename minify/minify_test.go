package minify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/seiflotfy/pyzip"
)

const fakeModeEnv = "PYZIP_FAKE_PYMINIFY"

// TestMain lets the test binary stand in for pyminify when fakeModeEnv is set.
func TestMain(m *testing.M) {
	switch os.Getenv(fakeModeEnv) {
	case "":
		os.Exit(m.Run())
	case "args":
		fmt.Print(strings.Join(os.Args[1:], "\n"))
	case "strip":
		src, _ := io.ReadAll(os.Stdin)
		var lines []string
		for _, line := range strings.Split(string(src), "\n") {
			if line = strings.TrimSpace(line); line != "" && !strings.HasPrefix(line, "#") {
				lines = append(lines, line)
			}
		}
		fmt.Print(strings.Join(lines, ";"))
	case "fail":
		_, _ = io.ReadAll(os.Stdin)
		fmt.Fprintln(os.Stderr, "  File \"<stdin>\", line 1\n    def (\n        ^\nSyntaxError: invalid syntax")
		os.Exit(1)
	}
	os.Exit(0)
}

func fakeExec(t *testing.T, mode string) *Exec {
	t.Helper()
	t.Setenv(fakeModeEnv, mode)
	exe, err := os.Executable()
	if err != nil {
		t.Fatal(err)
	}
	return &Exec{Path: exe, Options: DefaultOptions()}
}

func TestDefaultOptionsArgs(t *testing.T) {
	got := DefaultOptions().Args()
	want := []string{"--remove-literal-statements", "--rename-globals", "-"}
	if !slices.Equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestZeroOptionsArgs(t *testing.T) {
	got := Options{}.Args()
	want := []string{
		"--no-remove-annotations",
		"--no-remove-pass",
		"--no-combine-imports",
		"--no-hoist-literals",
		"--no-rename-locals",
		"--no-remove-object-base",
		"--no-convert-posargs-to-args",
		"-",
	}
	if !slices.Equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPreserveArgs(t *testing.T) {
	o := DefaultOptions()
	o.PreserveLocals = []string{"keep", "me"}
	o.PreserveGlobals = []string{"API"}
	o.PreserveShebang = true
	o.RemoveAsserts = true
	o.RemoveDebug = true

	got := o.Args()
	want := []string{
		"--remove-literal-statements",
		"--preserve-locals", "keep,me",
		"--rename-globals",
		"--preserve-globals", "API",
		"--preserve-shebang",
		"--remove-asserts",
		"--remove-debug",
		"-",
	}
	if !slices.Equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExecPassesArgs(t *testing.T) {
	e := fakeExec(t, "args")
	out, err := e.Minify(context.Background(), "pass")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := strings.Split(out, "\n"), DefaultOptions().Args(); !slices.Equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExecMinifies(t *testing.T) {
	e := fakeExec(t, "strip")
	out, err := e.Minify(context.Background(), "x = 1\n# note\n\ny = 2\n")
	if err != nil {
		t.Fatal(err)
	}
	if out != "x = 1;y = 2" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestExecSyntaxError(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	e := fakeExec(t, "fail")
	e.SetLogger(zap.New(core).Sugar())

	_, err := e.Minify(context.Background(), "def (")
	if !errors.Is(err, pyzip.ErrSyntax) {
		t.Fatalf("expected ErrSyntax, got %v", err)
	}
	if !strings.Contains(err.Error(), "SyntaxError: invalid syntax") {
		t.Errorf("expected stderr in error, got %q", err)
	}
	if logs.Len() != 2 {
		t.Errorf("expected 2 log entries, got %d", logs.Len())
	}
}

func TestExecMissingBinary(t *testing.T) {
	e := &Exec{Path: "/nonexistent/pyminify"}
	_, err := e.Minify(context.Background(), "pass")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, pyzip.ErrSyntax) {
		t.Error("a missing binary is not a syntax error")
	}
}

func TestExecCanceled(t *testing.T) {
	e := fakeExec(t, "strip")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Minify(ctx, "pass"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestCompressWithExec(t *testing.T) {
	e := fakeExec(t, "strip")
	c := pyzip.New(pyzip.WithMinifier(e))

	data, err := c.Compress(context.Background(), "if x:\n    # why\n    pass\n")
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := c.Decompress(data)
	if err != nil {
		t.Fatal(err)
	}
	if decoded != "if x:;pass" {
		t.Errorf("unexpected round trip %q", decoded)
	}
}
