package commands

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportElapsed_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		elapsed  time.Duration
		expected string
	}{
		{name: "rounds to milliseconds", elapsed: 1250 * time.Microsecond, expected: "Linting completed in 1ms\n"},
		{name: "uses minimum of one millisecond", elapsed: 300 * time.Microsecond, expected: "Linting completed in 1ms\n"},
		{name: "supports second-scale durations", elapsed: 1234 * time.Millisecond, expected: "Linting completed in 1.234s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			reportElapsed(&buf, "Linting", tt.elapsed)
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestIsStdin(t *testing.T) {
	t.Parallel()

	assert.True(t, IsStdin("-"))
	assert.False(t, IsStdin(""))
	assert.False(t, IsStdin("--"))
	assert.False(t, IsStdin("test.js"))
}

func TestCollectFiles(t *testing.T) {
	t.Parallel()

	project := filepath.Join("testdata", "project")
	files, err := collectFiles([]string{
		project,
		filepath.Join(project, "clean.js"),
		"-",
		filepath.Join("testdata", "any.js"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(project, "clean.js"),
		filepath.Join(project, "test", "client.spec.ts"),
		filepath.Join(project, "test", "math.spec.js"),
		"-",
		filepath.Join("testdata", "any.js"),
	}, files)
}

func TestIsLintable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		expected bool
	}{
		{path: "a.js", expected: true},
		{path: "a.spec.tsx", expected: true},
		{path: "a.mjs", expected: true},
		{path: "a.d.ts"},
		{path: "a.ts.types.yaml"},
		{path: "a.ts.types.json"},
		{path: "ast.json"},
		{path: "styles.css"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, isLintable(tt.path))
		})
	}
}
