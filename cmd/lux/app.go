package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/oarkflow/lux"
)

// Exit statuses follow sysexits.h.
const (
	exitOK     = 0
	exitUsage  = 64
	exitData   = 65
	exitOSErr  = 72
	exitConfig = 78
)

// app holds what every command shares: configuration and the output streams.
type app struct {
	cfg    lux.Config
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

func newApp(cfg lux.Config, stdout, stderr io.Writer) *app {
	return &app{
		cfg:    cfg,
		stdout: stdout,
		stderr: stderr,
		logger: cfg.Logger(stderr),
	}
}

func (a *app) options() []lux.Option {
	opts := a.cfg.Options()
	return append(opts,
		lux.WithStdout(a.stdout),
		lux.WithReporter(lux.NewWriterReporter(a.stderr)),
		lux.WithLogger(a.logger),
	)
}

func (a *app) interpreter() *lux.Interpreter {
	return lux.NewInterpreter(a.options()...)
}

// readScript loads a script, returning a non-zero exit status when it cannot.
func (a *app) readScript(path string) (string, int) {
	if path == "" {
		fmt.Fprintf(a.stderr, "Usage: lux run <script%s>\n", a.cfg.Extension)
		return "", exitUsage
	}
	if filepath.Ext(path) != a.cfg.Extension {
		fmt.Fprintf(a.stderr, "Error: %s is not a %s file\n", path, a.cfg.Extension)
		return "", exitUsage
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: could not read %s: %v\n", path, err)
		return "", exitOSErr
	}
	return string(data), exitOK
}

func (a *app) runFile(path string) int {
	src, code := a.readScript(path)
	if code != exitOK {
		return code
	}
	a.logger.Info("running script", slog.String("file", path))
	if err := a.interpreter().Run(src); err != nil {
		return exitData
	}
	return exitOK
}

// front scans and parses without executing, printing diagnostics to stderr.
func (a *app) front(src string) ([]lux.Token, []lux.Stmt, []lux.Diagnostic) {
	collector := &lux.CollectingReporter{}
	reporter := lux.MultiReporter{collector, lux.NewWriterReporter(a.stderr)}
	tokens := lux.Scan(src, reporter)
	stmts := lux.NewParser(tokens, reporter).Parse()
	return tokens, stmts, collector.Diagnostics()
}

func (a *app) tokens(path string) int {
	src, code := a.readScript(path)
	if code != exitOK {
		return code
	}
	collector := &lux.CollectingReporter{}
	tokens := lux.Scan(src, lux.MultiReporter{collector, lux.NewWriterReporter(a.stderr)})
	if code := a.writeJSON(lux.WriteTokens(a.stdout, tokens)); code != exitOK {
		return code
	}
	if collector.Len() > 0 {
		return exitData
	}
	return exitOK
}

func (a *app) ast(path string) int {
	src, code := a.readScript(path)
	if code != exitOK {
		return code
	}
	_, stmts, diags := a.front(src)
	if code := a.writeJSON(lux.WriteProgram(a.stdout, stmts)); code != exitOK {
		return code
	}
	if len(diags) > 0 {
		return exitData
	}
	return exitOK
}

// format refuses to print anything for a script with syntax errors, since
// the recovered tree is missing statements.
func (a *app) format(path string) int {
	src, code := a.readScript(path)
	if code != exitOK {
		return code
	}
	_, stmts, diags := a.front(src)
	if len(diags) > 0 {
		return exitData
	}
	fmt.Fprint(a.stdout, lux.Format(stmts))
	return exitOK
}

func (a *app) check(path string) int {
	src, code := a.readScript(path)
	if code != exitOK {
		return code
	}
	collector := &lux.CollectingReporter{}
	lux.NewParser(lux.Scan(src, collector), collector).Parse()
	if code := a.writeJSON(lux.WriteDiagnostics(a.stdout, collector.Diagnostics())); code != exitOK {
		return code
	}
	if collector.Len() > 0 {
		return exitData
	}
	return exitOK
}

func (a *app) batch(ctx context.Context, paths []string) int {
	if len(paths) == 0 {
		fmt.Fprintf(a.stderr, "Usage: lux batch <script%s>...\n", a.cfg.Extension)
		return exitUsage
	}
	opts := append(a.cfg.Options(), lux.WithLogger(a.logger))
	runner := lux.NewBatchRunner(a.cfg.Workers, opts...)
	a.logger.Info("running batch", slog.Int("files", len(paths)), slog.Int("workers", runner.Workers()))

	results, err := runner.RunFiles(ctx, paths)
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return exitOSErr
	}
	code := exitOK
	for _, r := range results {
		fmt.Fprintf(a.stdout, "== %s ==\n%s", r.Filename, r.Output)
		for _, d := range r.Diagnostics {
			fmt.Fprintf(a.stderr, "%s:%s\n", r.Filename, d.Error())
		}
		switch {
		case r.Err != nil && len(r.Diagnostics) == 0:
			fmt.Fprintf(a.stderr, "Error: %v\n", r.Err)
			code = exitOSErr
		case r.Failed() && code == exitOK:
			code = exitData
		}
	}
	return code
}

// writeJSON maps the error of a JSON dump onto an exit status.
func (a *app) writeJSON(err error) int {
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return exitOSErr
	}
	return exitOK
}
