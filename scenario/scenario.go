// Package scenario loads training scenarios from TOML files: the session
// identity, the simulated file tree, which commands are enabled, and the
// briefing shown when a terminal opens. A scenario compiles into a shell
// configuration plus an in-memory file system.
package scenario

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"termlab/shell"
)

// Scenario is the decoded form of one scenario file.
type Scenario struct {
	Session  Session           `toml:"session"`
	Commands []string          `toml:"commands"`
	History  History           `toml:"history"`
	Briefing string            `toml:"briefing"`
	System   map[string]string `toml:"system"`
	Dirs     []Dir             `toml:"dir"`
	Files    []File            `toml:"file"`
}

// Session names the simulated identity for the terminal window.
type Session struct {
	User  string `toml:"user"`
	Host  string `toml:"host"`
	Home  string `toml:"home"`
	Cwd   string `toml:"cwd"`
	Shell string `toml:"shell"`
}

// History tunes the command history buffer.
type History struct {
	Capacity int `toml:"capacity"`
}

// Dir declares a directory in the simulated tree.
type Dir struct {
	Path string `toml:"path"`
}

// File declares a file in the simulated tree.
type File struct {
	Path       string `toml:"path"`
	Content    string `toml:"content"`
	Hidden     bool   `toml:"hidden"`
	Suspicious bool   `toml:"suspicious"`
}

// Load reads and parses the scenario file at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenario: %s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes and validates scenario TOML.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	md, err := toml.Decode(string(data), &sc)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *Scenario) validate() error {
	if sc.Session.User == "" {
		return fmt.Errorf("session.user must be set")
	}
	if sc.Session.Host == "" {
		return fmt.Errorf("session.host must be set")
	}
	if sc.Session.Home == "" {
		return fmt.Errorf("session.home must be set")
	}
	if !strings.HasPrefix(sc.Session.Home, "/") {
		return fmt.Errorf("session.home %q is not absolute", sc.Session.Home)
	}
	if sc.Session.Cwd != "" && !strings.HasPrefix(sc.Session.Cwd, "/") {
		return fmt.Errorf("session.cwd %q is not absolute", sc.Session.Cwd)
	}
	if sc.History.Capacity < 0 {
		return fmt.Errorf("history.capacity must not be negative")
	}

	for i, name := range sc.Commands {
		if !shell.IsBuiltin(name) {
			return fmt.Errorf("commands[%d]: unknown command %q", i, name)
		}
	}

	for i, d := range sc.Dirs {
		if !strings.HasPrefix(d.Path, "/") {
			return fmt.Errorf("dir[%d]: path %q is not absolute", i, d.Path)
		}
	}

	seen := make(map[string]int)
	for i, f := range sc.Files {
		if !strings.HasPrefix(f.Path, "/") {
			return fmt.Errorf("file[%d]: path %q is not absolute", i, f.Path)
		}
		if strings.HasSuffix(f.Path, "/") {
			return fmt.Errorf("file[%d]: path %q has no file name", i, f.Path)
		}
		if prev, ok := seen[f.Path]; ok {
			return fmt.Errorf("file[%d]: path %q already declared by file[%d]", i, f.Path, prev)
		}
		seen[f.Path] = i
	}
	return nil
}
