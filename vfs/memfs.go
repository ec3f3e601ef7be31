package vfs

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
)

// dirSize is the synthesized size reported for directories.
const dirSize = 4096

type node struct {
	name       string
	typ        EntryType
	content    string
	hidden     bool
	suspicious bool
	children   map[string]*node
}

// MemFS is a deterministic in-memory tree. The zero value is not usable;
// call NewMemFS. Listings are sorted, lookups never fault, and nothing is
// ever mutated after Build-time, so it is safe to share between readers.
type MemFS struct {
	root *node
}

func NewMemFS() *MemFS {
	return &MemFS{root: &node{name: "/", typ: EntryDir, children: make(map[string]*node)}}
}

// AddDir creates a directory at p, creating parents as needed. Adding a
// directory over an existing file is an error.
func (m *MemFS) AddDir(p string) error {
	_, err := m.makeDir(p)
	return err
}

// AddFile creates or replaces the file at p with content, creating parent
// directories as needed. Adding a file over an existing directory is an
// error. Names starting with a dot are hidden.
func (m *MemFS) AddFile(p, content string) error {
	dir, name := splitTreePath(p)
	if name == "" {
		return fmt.Errorf("vfs: %q has no file name", p)
	}
	parent, err := m.makeDir(dir)
	if err != nil {
		return err
	}
	if old, ok := parent.children[name]; ok && old.typ == EntryDir {
		return fmt.Errorf("vfs: %q is a directory", p)
	}
	parent.children[name] = &node{
		name:    name,
		typ:     EntryFile,
		content: content,
		hidden:  strings.HasPrefix(name, "."),
	}
	return nil
}

// MarkHidden hides (or reveals) the entry at p. It reports whether p exists.
func (m *MemFS) MarkHidden(p string, hidden bool) bool {
	n := m.find(p)
	if n == nil || n == m.root {
		return false
	}
	n.hidden = hidden
	return true
}

// MarkSuspicious flags the entry at p. It reports whether p exists.
func (m *MemFS) MarkSuspicious(p string, suspicious bool) bool {
	n := m.find(p)
	if n == nil || n == m.root {
		return false
	}
	n.suspicious = suspicious
	return true
}

func (m *MemFS) ReadFile(_ context.Context, dir, name string) (string, bool) {
	d := m.find(dir)
	if d == nil || d.typ != EntryDir {
		return "", false
	}
	f, ok := d.children[name]
	if !ok || f.typ != EntryFile {
		return "", false
	}
	return f.content, true
}

func (m *MemFS) FileExists(_ context.Context, dir, name string) bool {
	d := m.find(dir)
	if d == nil || d.typ != EntryDir {
		return false
	}
	f, ok := d.children[name]
	return ok && f.typ == EntryFile
}

func (m *MemFS) DirExists(_ context.Context, p string) bool {
	n := m.find(p)
	return n != nil && n.typ == EntryDir
}

func (m *MemFS) List(_ context.Context, p string, includeHidden bool) []Entry {
	d := m.find(p)
	if d == nil || d.typ != EntryDir {
		return nil
	}
	out := make([]Entry, 0, len(d.children))
	for _, c := range d.children {
		if c.hidden && !includeHidden {
			continue
		}
		size := dirSize
		if c.typ == EntryFile {
			size = len(c.content)
		}
		out = append(out, Entry{
			Name:       c.name,
			Type:       c.typ,
			Hidden:     c.hidden,
			Suspicious: c.suspicious,
			Size:       size,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (m *MemFS) find(p string) *node {
	cur := m.root
	for _, seg := range splitSegments(p) {
		if cur.typ != EntryDir {
			return nil
		}
		next, ok := cur.children[seg]
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

func (m *MemFS) makeDir(p string) (*node, error) {
	cur := m.root
	for _, seg := range splitSegments(p) {
		next, ok := cur.children[seg]
		if !ok {
			next = &node{
				name:     seg,
				typ:      EntryDir,
				hidden:   strings.HasPrefix(seg, "."),
				children: make(map[string]*node),
			}
			cur.children[seg] = next
		}
		if next.typ != EntryDir {
			return nil, fmt.Errorf("vfs: %q is not a directory", seg)
		}
		cur = next
	}
	return cur, nil
}

func splitSegments(p string) []string {
	p = path.Clean("/" + p)
	if p == "/" {
		return nil
	}
	return strings.Split(strings.TrimPrefix(p, "/"), "/")
}

func splitTreePath(p string) (dir, name string) {
	p = path.Clean("/" + p)
	if p == "/" {
		return "/", ""
	}
	i := strings.LastIndexByte(p, '/')
	if i == 0 {
		return "/", p[1:]
	}
	return p[:i], p[i+1:]
}
