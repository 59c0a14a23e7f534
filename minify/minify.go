// Package minify runs the external python-minifier ("pyminify") ahead of
// encoding.
package minify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/seiflotfy/pyzip"
)

// DefaultPath is the executable looked up on PATH when Exec.Path is empty.
const DefaultPath = "pyminify"

// Options mirrors python-minifier's transforms.
type Options struct {
	RemoveAnnotations       bool     `toml:"remove-annotations"`
	RemovePass              bool     `toml:"remove-pass"`
	RemoveLiteralStatements bool     `toml:"remove-literal-statements"`
	CombineImports          bool     `toml:"combine-imports"`
	HoistLiterals           bool     `toml:"hoist-literals"`
	RenameLocals            bool     `toml:"rename-locals"`
	PreserveLocals          []string `toml:"preserve-locals"`
	RenameGlobals           bool     `toml:"rename-globals"`
	PreserveGlobals         []string `toml:"preserve-globals"`
	RemoveObjectBase        bool     `toml:"remove-object-base"`
	ConvertPosargsToArgs    bool     `toml:"convert-posargs-to-args"`
	PreserveShebang         bool     `toml:"preserve-shebang"`
	RemoveAsserts           bool     `toml:"remove-asserts"`
	RemoveDebug             bool     `toml:"remove-debug"`
}

// DefaultOptions enables every size-reducing transform that keeps behaviour,
// leaving shebangs, asserts and debug blocks alone.
func DefaultOptions() Options {
	return Options{
		RemoveAnnotations:       true,
		RemovePass:              true,
		RemoveLiteralStatements: true,
		CombineImports:          true,
		HoistLiterals:           true,
		RenameLocals:            true,
		RenameGlobals:           true,
		RemoveObjectBase:        true,
		ConvertPosargsToArgs:    true,
	}
}

// Args returns the pyminify command line for o, reading from stdin.
func (o Options) Args() []string {
	var args []string
	flag := func(cond bool, name string) {
		if cond {
			args = append(args, name)
		}
	}
	// pyminify's own defaults differ from DefaultOptions, so every switch
	// is spelled out in the direction its default does not already cover.
	flag(!o.RemoveAnnotations, "--no-remove-annotations")
	flag(!o.RemovePass, "--no-remove-pass")
	flag(o.RemoveLiteralStatements, "--remove-literal-statements")
	flag(!o.CombineImports, "--no-combine-imports")
	flag(!o.HoistLiterals, "--no-hoist-literals")
	flag(!o.RenameLocals, "--no-rename-locals")
	if len(o.PreserveLocals) > 0 {
		args = append(args, "--preserve-locals", strings.Join(o.PreserveLocals, ","))
	}
	flag(o.RenameGlobals, "--rename-globals")
	if len(o.PreserveGlobals) > 0 {
		args = append(args, "--preserve-globals", strings.Join(o.PreserveGlobals, ","))
	}
	flag(!o.RemoveObjectBase, "--no-remove-object-base")
	flag(!o.ConvertPosargsToArgs, "--no-convert-posargs-to-args")
	flag(o.PreserveShebang, "--preserve-shebang")
	flag(o.RemoveAsserts, "--remove-asserts")
	flag(o.RemoveDebug, "--remove-debug")
	return append(args, "-")
}

// Exec minifies by running pyminify as a child process. It implements
// pyzip.Minifier.
type Exec struct {
	Path    string
	Options Options
	logger  *zap.SugaredLogger
}

var _ pyzip.Minifier = (*Exec)(nil)

// New returns an Exec using DefaultPath and DefaultOptions.
func New() *Exec {
	return &Exec{Path: DefaultPath, Options: DefaultOptions()}
}

// SetLogger sets the logger for process invocations.
func (e *Exec) SetLogger(logger *zap.SugaredLogger) {
	e.logger = logger
}

// Minify feeds code to pyminify on stdin and returns its stdout. A non-zero
// exit wraps pyzip.ErrSyntax with the minifier's diagnostics.
func (e *Exec) Minify(ctx context.Context, code string) (string, error) {
	path := e.Path
	if path == "" {
		path = DefaultPath
	}
	args := e.Options.Args()
	if e.logger != nil {
		e.logger.Debugf("minify: running %s %s", path, strings.Join(args, " "))
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = strings.NewReader(code)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			msg := strings.TrimSpace(stderr.String())
			if e.logger != nil {
				e.logger.Debugf("minify: %s exited with %d: %s", path, exitErr.ExitCode(), msg)
			}
			return "", fmt.Errorf("%w: %s", pyzip.ErrSyntax, msg)
		}
		return "", fmt.Errorf("minify: %w", err)
	}
	return stdout.String(), nil
}
