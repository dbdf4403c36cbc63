package types

import "io/fs"

// FS abstracts the filesystem operations the release directory manager
// performs. The default implementation delegates to the os package;
// tests may substitute an in-memory filesystem.
type FS interface {
	// Stat follows symlinks; Lstat does not.
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)

	// Directory operations
	ReadDir(name string) ([]fs.DirEntry, error)
	MkdirAll(path string, perm fs.FileMode) error

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Removal operations
	Remove(name string) error
	RemoveAll(path string) error
}
