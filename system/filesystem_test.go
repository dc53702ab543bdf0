package system_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/chaifriendly/lint/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSystem_Open_Success(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.js")
	testContent := []byte("expect(a).to.be.true;")
	require.NoError(t, os.WriteFile(testFile, testContent, 0o644), "should create test file")

	fsys := &system.FileSystem{}
	file, err := fsys.Open(testFile)
	require.NoError(t, err, "should open file successfully")
	require.NotNil(t, file, "should return non-nil file")
	defer file.Close()

	content := make([]byte, len(testContent))
	n, err := file.Read(content)
	require.NoError(t, err, "should read file content")
	assert.Equal(t, len(testContent), n, "should read correct number of bytes")
	assert.Equal(t, testContent, content, "should read correct content")
}

func TestFileSystem_Open_Error(t *testing.T) {
	t.Parallel()

	fsys := &system.FileSystem{}
	file, err := fsys.Open("nonexistent-file.js")

	require.Error(t, err, "should return error for nonexistent file")
	assert.Nil(t, file, "should return nil file on error")
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"src/a.js": &fstest.MapFile{Data: []byte("a;")},
	}

	data, err := system.ReadFile(fsys, "src/a.js")
	require.NoError(t, err)
	assert.Equal(t, "a;", string(data))

	_, err = system.ReadFile(fsys, "src/missing.js")
	require.Error(t, err)
}
