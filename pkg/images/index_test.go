package images

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFolder(t *testing.T, root, name string, files ...string) {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("img"), 0o644))
	}
}

func Test_FolderKey(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"WPJF001-127", "WPJF001-127"},
		{"WPJF 001-127", "WPJF001-127"},
		{"wpjf001-127", "WPJF001-127"},
		{"WPJF001-127 (1)", "WPJF001-127"},
		{"WPJF001-127 (2)", "WPJF001-127"},
		{"WPJF001 (10)", "WPJF001"},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, FolderKey(tc.name), "name %q", tc.name)
	}
}

func Test_Scan_MissingRootIsEmptyNotError(t *testing.T) {
	idx, err := Scan(filepath.Join(t.TempDir(), "nope"), zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, 0, idx.Len())
	require.Empty(t, idx.Resolve("WPJF 001-127"))
}

func Test_Scan_IndexesFoldersAndFiltersExtensions(t *testing.T) {
	root := t.TempDir()
	writeFolder(t, root, "WPJF001-127", "front.jpg", "back.JPEG", "notes.txt", "pic.webp")
	writeFolder(t, root, "WPGR002 (1)", "a.png")
	writeFolder(t, root, "empty")
	require.NoError(t, os.WriteFile(filepath.Join(root, "stray.jpg"), []byte("img"), 0o644))

	idx, err := Scan(root, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, 3, idx.Len())

	entry, ok := idx.Lookup("WPJF001-127")
	require.True(t, ok)
	require.Len(t, entry.Images, 3) // txt excluded, extensions case-insensitive

	entry, ok = idx.Lookup("WPGR002")
	require.True(t, ok)
	require.Equal(t, "WPGR002 (1)", entry.Name)
	require.Len(t, entry.Images, 1)

	entry, ok = idx.Lookup("EMPTY")
	require.True(t, ok)
	require.Empty(t, entry.Images)
}

func Test_Scan_RecordsInsertionOrder(t *testing.T) {
	root := t.TempDir()
	writeFolder(t, root, "WPJF001-120", "a.jpg")
	writeFolder(t, root, "WPJF001-127", "b.jpg")
	writeFolder(t, root, "WPGR002", "c.jpg")

	idx, err := Scan(root, zap.NewNop())
	require.NoError(t, err)

	// os.ReadDir returns entries sorted by name; the index records that
	// order as its scan order.
	require.Equal(t, []string{"WPGR002", "WPJF001-120", "WPJF001-127"}, idx.Keys())
}
