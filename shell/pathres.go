package shell

import (
	"path"
	"strings"
)

// Resolve turns target into an absolute path relative to base. An empty
// target resolves to base itself; ".." never escapes the root.
func Resolve(base, target string) string {
	if target == "" {
		return Normalize(base)
	}
	if strings.HasPrefix(target, "/") {
		return Normalize(target)
	}
	if base == "" || base == "/" {
		return Normalize("/" + target)
	}
	return Normalize(base + "/" + target)
}

// Normalize collapses duplicate separators and "."/".." segments and
// guarantees a single leading slash with no trailing one (except the root
// itself). It is idempotent. The slash is prepended before cleaning so that
// ".." segments in relative input resolve against the root instead of
// surviving the clean.
func Normalize(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// Split cuts an absolute path into its parent directory and final name.
// The root splits into ("/", "").
func Split(p string) (dir, name string) {
	p = Normalize(p)
	if p == "/" {
		return "/", ""
	}
	i := strings.LastIndexByte(p, '/')
	if i == 0 {
		return "/", p[1:]
	}
	return p[:i], p[i+1:]
}

// Join glues segments together with single separators and normalizes the
// result.
func Join(segs ...string) string {
	return Normalize(path.Join(segs...))
}

// Parent returns the directory containing p. The root is its own parent.
func Parent(p string) string {
	dir, _ := Split(p)
	return dir
}

// displayPath renders p for the prompt, abbreviating the home directory
// (and anything under it) with a tilde.
func displayPath(p, home string) string {
	if home == "" || home == "/" {
		return p
	}
	if p == home {
		return "~"
	}
	if strings.HasPrefix(p, home+"/") {
		return "~" + p[len(home):]
	}
	return p
}
