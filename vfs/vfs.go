// Package vfs defines the directory-tree abstraction the shell runs against
// and an in-memory reference implementation for scenarios and tests.
package vfs

import "context"

// EntryType is a directory entry type.
type EntryType uint8

const (
	EntryUnknown EntryType = iota
	EntryFile
	EntryDir
)

// Entry describes one name inside a directory.
type Entry struct {
	Name       string
	Type       EntryType
	Hidden     bool
	Suspicious bool
	Size       int
}

// FS is the read surface the shell consumes. Implementations back it with
// whatever store they like; reads may block, so every call carries a context.
//
// All four methods tolerate paths that do not exist: lookups report absence
// through their return values and never fail any harder than that.
type FS interface {
	// ReadFile returns the content of name inside dir, or ok=false if dir
	// does not exist, name is absent, or name is not a file.
	ReadFile(ctx context.Context, dir, name string) (content string, ok bool)

	// FileExists reports whether dir contains a file called name.
	FileExists(ctx context.Context, dir, name string) bool

	// DirExists reports whether path names a directory.
	DirExists(ctx context.Context, path string) bool

	// List returns the entries of the directory at path, sorted by name.
	// Hidden entries are omitted unless includeHidden is set. A missing or
	// non-directory path yields nil.
	List(ctx context.Context, path string, includeHidden bool) []Entry
}
