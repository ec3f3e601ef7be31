package scenario

import (
	"fmt"

	"termlab/shell"
	"termlab/vfs"
)

// Build compiles the scenario into a shell configuration and the file tree
// it runs against. The home directory is created even when the tree does
// not declare it, so a fresh session always has somewhere to stand. The
// caller still owns Config.Output and the hooks.
func (sc *Scenario) Build() (shell.Config, *vfs.MemFS, error) {
	fs := vfs.NewMemFS()

	if err := fs.AddDir(sc.Session.Home); err != nil {
		return shell.Config{}, nil, fmt.Errorf("scenario: home: %w", err)
	}
	for i, d := range sc.Dirs {
		if err := fs.AddDir(d.Path); err != nil {
			return shell.Config{}, nil, fmt.Errorf("scenario: dir[%d]: %w", i, err)
		}
	}
	for i, f := range sc.Files {
		if err := fs.AddFile(f.Path, f.Content); err != nil {
			return shell.Config{}, nil, fmt.Errorf("scenario: file[%d]: %w", i, err)
		}
		if f.Hidden {
			fs.MarkHidden(f.Path, true)
		}
		if f.Suspicious {
			fs.MarkSuspicious(f.Path, true)
		}
	}

	cfg := shell.Config{
		FS:           fs,
		User:         sc.Session.User,
		Host:         sc.Session.Host,
		Home:         sc.Session.Home,
		Cwd:          sc.Session.Cwd,
		Name:         sc.Session.Shell,
		Commands:     sc.Commands,
		HistoryLimit: sc.History.Capacity,
		Sys:          sc.System,
	}
	return cfg, fs, nil
}
