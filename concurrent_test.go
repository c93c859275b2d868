package lux

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchRunnerRunFiles(t *testing.T) {
	dir := t.TempDir()
	files := make([]string, 0, 6)
	for i := 0; i < 5; i++ {
		name := filepath.Join(dir, fmt.Sprintf("script%d.lux", i))
		src := fmt.Sprintf("var n = %d; fun sq(x) { return x * x; } print(sq(n));", i)
		require.NoError(t, os.WriteFile(name, []byte(src), 0o644))
		files = append(files, name)
	}
	broken := filepath.Join(dir, "broken.lux")
	require.NoError(t, os.WriteFile(broken, []byte("print(missing);"), 0o644))
	files = append(files, broken)

	results, err := NewBatchRunner(3).RunFiles(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, results, len(files))

	for i := 0; i < 5; i++ {
		r := results[i]
		assert.Equal(t, files[i], r.Filename, "results keep input order")
		assert.Equal(t, fmt.Sprintf("%d\n", i*i), r.Output)
		assert.False(t, r.Failed())
		assert.Empty(t, r.Diagnostics)
	}

	last := results[5]
	assert.True(t, last.Failed())
	assert.Equal(t, "NIL\n", last.Output)
	require.Len(t, last.Diagnostics, 1)
	assert.Equal(t, "Variable not found: missing", last.Diagnostics[0].Message)
}

func TestBatchRunnerIsolatesScripts(t *testing.T) {
	results, err := NewBatchRunner(2).RunSources(context.Background(), []string{
		"var shared = 1;",
		"print(shared);",
	})
	require.NoError(t, err)
	assert.Equal(t, "<source 1>", results[1].Filename)
	assert.Equal(t, "NIL\n", results[1].Output)
	assert.True(t, results[1].Failed())
}

func TestBatchRunnerMissingFile(t *testing.T) {
	results, err := NewBatchRunner(1).RunFiles(context.Background(), []string{filepath.Join(t.TempDir(), "nope.lux")})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, errors.Is(results[0].Err, os.ErrNotExist))
	assert.Empty(t, results[0].Diagnostics)
}

func TestBatchRunnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewBatchRunner(1).RunSources(ctx, []string{"print(1);", "print(2);"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBatchRunnerDefaults(t *testing.T) {
	assert.Positive(t, NewBatchRunner(0).Workers())
	results, err := NewBatchRunner(4).RunFiles(context.Background(), nil)
	assert.NoError(t, err)
	assert.Nil(t, results)
}

func TestBatchRunnerAppliesOptions(t *testing.T) {
	results, err := NewBatchRunner(1, WithMaxCallDepth(10)).RunSources(context.Background(), []string{
		"fun f() { return f(); } f();",
	})
	require.NoError(t, err)
	require.Len(t, results[0].Diagnostics, 1)
	assert.Equal(t, "Stack overflow: maximum call depth 10 exceeded", results[0].Diagnostics[0].Message)
}
