package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oarkflow/lux"
)

func testApp() (*app, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	cfg := lux.DefaultConfig()
	cfg.LogLevel = "error"
	return newApp(cfg, &stdout, &stderr), &stdout, &stderr
}

func writeScript(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestRunFileExitCodes(t *testing.T) {
	tests := []struct {
		name   string
		file   func(t *testing.T) string
		code   int
		stdout string
	}{
		{"ok", func(t *testing.T) string { return writeScript(t, "ok.lux", `print("hi");`) }, exitOK, "hi\n"},
		{"runtime error", func(t *testing.T) string { return writeScript(t, "bad.lux", "print(x);") }, exitData, "NIL\n"},
		{"syntax error", func(t *testing.T) string { return writeScript(t, "syntax.lux", "var ;") }, exitData, ""},
		{"wrong extension", func(t *testing.T) string { return writeScript(t, "script.txt", `print("hi");`) }, exitUsage, ""},
		{"no argument", func(*testing.T) string { return "" }, exitUsage, ""},
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "gone.lux") }, exitOSErr, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, stdout, _ := testApp()
			assert.Equal(t, tt.code, a.runFile(tt.file(t)))
			assert.Equal(t, tt.stdout, stdout.String())
		})
	}
}

func TestRunFileReportsToStderr(t *testing.T) {
	a, _, stderr := testApp()
	a.runFile(writeScript(t, "bad.lux", "\nprint(x);"))
	assert.Equal(t, " [Line 2]Error: Variable not found: x\n", stderr.String())
}

func TestFormatCommand(t *testing.T) {
	a, stdout, _ := testApp()
	code := a.format(writeScript(t, "f.lux", "fun f(a){return a;}"))
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "fun f(a) {\n    return a;\n}\n", stdout.String())

	a, stdout, _ = testApp()
	assert.Equal(t, exitData, a.format(writeScript(t, "g.lux", "fun (")))
	assert.Empty(t, stdout.String())
}

func TestCheckCommand(t *testing.T) {
	a, stdout, _ := testApp()
	assert.Equal(t, exitOK, a.check(writeScript(t, "ok.lux", "print(missing);")))
	assert.Equal(t, "[]\n", stdout.String(), "check does not execute")

	a, stdout, _ = testApp()
	assert.Equal(t, exitData, a.check(writeScript(t, "bad.lux", "var ;")))
	diags, err := lux.UnmarshalDiagnostics(stdout.Bytes())
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, lux.PhaseParse, diags[0].Phase)
}

func TestTokensAndAstCommands(t *testing.T) {
	path := writeScript(t, "t.lux", "var a = 1;")

	a, stdout, _ := testApp()
	assert.Equal(t, exitOK, a.tokens(path))
	assert.Contains(t, stdout.String(), `"type": "VAR"`)

	a, stdout, _ = testApp()
	assert.Equal(t, exitOK, a.ast(path))
	assert.Contains(t, stdout.String(), `"type": "Var"`)

	a, _, _ = testApp()
	assert.Equal(t, exitData, a.tokens(writeScript(t, "u.lux", "@")))
}

func TestBatchCommand(t *testing.T) {
	good := writeScript(t, "good.lux", "print(1);")
	bad := writeScript(t, "bad.lux", "print(x);")

	a, stdout, stderr := testApp()
	assert.Equal(t, exitData, a.batch(context.Background(), []string{good, bad}))
	assert.Equal(t, "== "+good+" ==\n1\n== "+bad+" ==\nNIL\n", stdout.String())
	assert.Contains(t, stderr.String(), "Variable not found: x")

	a, _, _ = testApp()
	assert.Equal(t, exitOK, a.batch(context.Background(), []string{good}))

	a, _, _ = testApp()
	assert.Equal(t, exitUsage, a.batch(context.Background(), nil))

	a, _, _ = testApp()
	assert.Equal(t, exitOSErr, a.batch(context.Background(), []string{filepath.Join(t.TempDir(), "none.lux")}))
}

func TestIncomplete(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"print(1);\n", false},
		{"fun f() {\n", true},
		{"fun f() {\nreturn 1;\n}\n", false},
		{"print(\n", true},
		{"\"open string\n", true},
		{"/* open comment\n", true},
		{"}\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, incomplete(tt.src))
		})
	}
}

func TestFinishExitsOnFailure(t *testing.T) {
	var got []int
	saved := exit
	t.Cleanup(func() { exit = saved })
	exit = func(code int) { got = append(got, code) }

	assert.NoError(t, finish(exitOK))
	assert.NoError(t, finish(exitData))
	assert.Equal(t, []int{exitData}, got)
}
