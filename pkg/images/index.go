// pkg/images/index.go
package images

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// FolderEntry is one image folder under the archive root.
type FolderEntry struct {
	Key    string   // normalized folder key
	Name   string   // folder name as found on disk
	Path   string   // absolute or root-relative folder path
	Images []string // image file paths in directory order
}

// Index maps normalized folder keys to their image sets. Built once per
// sync run from a single filesystem traversal and immutable afterward.
// Key insertion order is recorded so the prefix fallback in Resolve has
// a deterministic tie-break.
type Index struct {
	entries map[string]*FolderEntry
	keys    []string // scan insertion order
}

// NewIndex returns an empty index. Useful when no image archive is
// configured; every lookup resolves to nothing.
func NewIndex() *Index {
	return &Index{entries: make(map[string]*FolderEntry)}
}

// Duplicate-folder rename markers like "WPJF001 (2)".
var duplicateMarkerRe = regexp.MustCompile(`\s*\(\d+\)$`)

// Image file extensions recognized during the scan.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// FolderKey normalizes a folder name for matching: the trailing
// duplicate marker is stripped, spaces removed, and the result
// upper-cased.
func FolderKey(name string) string {
	clean := duplicateMarkerRe.ReplaceAllString(name, "")
	return strings.ToUpper(strings.ReplaceAll(clean, " ", ""))
}

// Scan walks the immediate subdirectories of root and builds the folder
// index. A missing root is a normal condition, not an error: callers get
// an empty index and must treat "no images available" as expected.
func Scan(root string, logger *zap.Logger) (*Index, error) {
	idx := NewIndex()

	if _, err := os.Stat(root); os.IsNotExist(err) {
		logger.Warn("Image directory does not exist, continuing without images",
			zap.String("root", root))
		return idx, nil
	}

	dirs, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read image directory %s: %w", root, err)
	}

	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}

		path := filepath.Join(root, dir.Name())
		files, err := os.ReadDir(path)
		if err != nil {
			logger.Warn("Skipping unreadable image folder",
				zap.String("folder", path),
				zap.Error(err))
			continue
		}

		entry := &FolderEntry{
			Key:  FolderKey(dir.Name()),
			Name: dir.Name(),
			Path: path,
		}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			if imageExtensions[strings.ToLower(filepath.Ext(f.Name()))] {
				entry.Images = append(entry.Images, filepath.Join(path, f.Name()))
			}
		}

		idx.add(entry)
	}

	logger.Info("Scanned image folders",
		zap.String("root", root),
		zap.Int("folders", idx.Len()))

	return idx, nil
}

func (ix *Index) add(entry *FolderEntry) {
	if _, exists := ix.entries[entry.Key]; !exists {
		ix.keys = append(ix.keys, entry.Key)
	}
	ix.entries[entry.Key] = entry
}

// Lookup returns the entry for an exact normalized key.
func (ix *Index) Lookup(key string) (*FolderEntry, bool) {
	entry, ok := ix.entries[key]
	return entry, ok
}

// Keys returns folder keys in scan insertion order.
func (ix *Index) Keys() []string {
	return ix.keys
}

// Len returns the number of indexed folders.
func (ix *Index) Len() int {
	return len(ix.entries)
}
