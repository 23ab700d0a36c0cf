package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const importLine = `{"_id":"Q9NZ94","uniprot_id":"NLGN3_HUMAN","sequence":"MWLQLGLPSLPLLLAL","organism":{"taxon_id":"9606"}}
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestImportCmd_File(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	path := filepath.Join(t.TempDir(), "dump.jsonl")
	writeFile(t, path, importLine+`{"uniprot_id":"NOID_HUMAN","sequence":"MK"}`+"\n")

	out, err := runCommand(t, importCmd, "import", path)

	require.NoError(t, err)
	assert.Contains(t, out, "dump.jsonl: 1 imported, 1 skipped")
	assert.Contains(t, out, "without _id")

	out, err = runCommand(t, showCmd, "show", "NLGN3_HUMAN", "--offline")
	require.NoError(t, err)
	assert.Contains(t, out, "Q9NZ94")
}

func TestImportCmd_Directory(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.jsonl"), importLine)
	writeFile(t, filepath.Join(dir, "a.jsonl"), importLine)
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	out, err := runCommand(t, importCmd, "import", dir)

	require.NoError(t, err)
	assert.Contains(t, out, "a.jsonl: 1 imported")
	assert.Contains(t, out, "b.jsonl: 1 imported")
	assert.NotContains(t, out, "notes.txt")
	assert.Less(t, strings.Index(out, "a.jsonl"), strings.Index(out, "b.jsonl"))
}

func TestImportCmd_EmptyDirectory(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	dir := t.TempDir()
	out, err := runCommand(t, importCmd, "import", dir)

	require.NoError(t, err)
	assert.Contains(t, out, "No .jsonl files in")
}

func TestImportCmd_WatchNeedsDirectory(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	path := filepath.Join(t.TempDir(), "dump.jsonl")
	writeFile(t, path, importLine)

	_, err := runCommand(t, importCmd, "import", path, "--watch")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--watch needs a directory")
}

func TestImportCmd_MissingPath(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	_, err := runCommand(t, importCmd, "import", filepath.Join(t.TempDir(), "missing.jsonl"))

	assert.Error(t, err)
}

func TestDumpFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "z.jsonl"), "")
	writeFile(t, filepath.Join(dir, "a.JSONL"), "")
	writeFile(t, filepath.Join(dir, ".hidden.jsonl"), "")
	writeFile(t, filepath.Join(dir, "readme.md"), "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.jsonl"), 0o700))

	files, err := dumpFiles(dir)

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.JSONL"),
		filepath.Join(dir, "z.jsonl"),
	}, files)
}

func TestImportablePath(t *testing.T) {
	dir := t.TempDir()
	dump := filepath.Join(dir, "dump.jsonl")
	hidden := filepath.Join(dir, ".dump.jsonl")
	text := filepath.Join(dir, "dump.txt")
	sub := filepath.Join(dir, "sub.jsonl")
	writeFile(t, dump, "")
	writeFile(t, hidden, "")
	writeFile(t, text, "")
	require.NoError(t, os.Mkdir(sub, 0o700))

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"create", fsnotify.Event{Name: dump, Op: fsnotify.Create}, true},
		{"write", fsnotify.Event{Name: dump, Op: fsnotify.Write}, true},
		{"remove", fsnotify.Event{Name: dump, Op: fsnotify.Remove}, false},
		{"rename", fsnotify.Event{Name: dump, Op: fsnotify.Rename}, false},
		{"chmod", fsnotify.Event{Name: dump, Op: fsnotify.Chmod}, false},
		{"hidden", fsnotify.Event{Name: hidden, Op: fsnotify.Create}, false},
		{"other extension", fsnotify.Event{Name: text, Op: fsnotify.Write}, false},
		{"directory", fsnotify.Event{Name: sub, Op: fsnotify.Create}, false},
		{"vanished", fsnotify.Event{Name: filepath.Join(dir, "gone.jsonl"), Op: fsnotify.Create}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, ok := importablePath(tt.event)
			assert.Equal(t, tt.want, ok)
			if tt.want {
				assert.Equal(t, tt.event.Name, path)
			}
		})
	}
}
