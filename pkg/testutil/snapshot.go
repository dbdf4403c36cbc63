package testutil

import (
	"crypto/sha256"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// SnapshotTree records every entry below root as a sorted list of
// "relpath kind detail" lines: directories by name, files by content
// hash, symlinks by target. Two snapshots are equal iff the trees are
// byte-for-byte identical, which is what dry-run verification needs.
func SnapshotTree(t *testing.T, root string) []string {
	t.Helper()

	var lines []string
	err := filepath.Walk(root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		switch {
		case info.Mode()&os.ModeSymlink != 0:
			target, err := os.Readlink(path)
			if err != nil {
				return err
			}
			lines = append(lines, fmt.Sprintf("%s symlink %s", rel, target))
		case info.IsDir():
			lines = append(lines, fmt.Sprintf("%s dir", rel))
		default:
			content, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			sum := sha256.Sum256(content)
			lines = append(lines, fmt.Sprintf("%s file %x", rel, sum))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to snapshot tree %s: %v", root, err)
	}

	sort.Strings(lines)
	return lines
}

// AssertTreeUnchanged fails the test when the tree below root differs
// from a previously taken snapshot.
func AssertTreeUnchanged(t *testing.T, root string, before []string) {
	t.Helper()

	after := SnapshotTree(t, root)
	if strings.Join(before, "\n") != strings.Join(after, "\n") {
		t.Errorf("Tree %s changed\nBefore:\n%s\nAfter:\n%s",
			root, strings.Join(before, "\n"), strings.Join(after, "\n"))
	}
}
