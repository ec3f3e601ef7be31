package shell

import (
	"context"
	"fmt"

	"termlab/vfs"
)

// Style tags a chunk of output so the renderer can pick a presentation.
// The shell core never emits escape codes itself.
type Style string

const (
	StylePlain   Style = ""
	StyleCommand Style = "command"
	StyleError   Style = "error"
	StyleDir     Style = "dir"
	StyleAlert   Style = "alert"
)

// Sink receives everything the shell prints. Text may contain newlines.
type Sink func(text string, style Style)

// Session is the per-window identity and location state. Cwd is the only
// field commands mutate, and only cd does that.
type Session struct {
	User string
	Host string
	Home string
	Cwd  string
}

type cmdFunc func(ctx context.Context, env *Env, args []string) error

// argHint steers completion for a command's positional arguments.
type argHint uint8

const (
	argPaths    argHint = iota // directories and files
	argDirs                    // directories only
	argCommands                // registered command names
)

// Option is one flag a command accepts, used for help text and flag
// completion.
type Option struct {
	Flag string
	Desc string
}

type command struct {
	Name    string
	Aliases []string
	Usage   string
	Desc    string
	Options []Option
	Args    argHint
	Run     cmdFunc
}

// Env is the world a command runs against.
type Env struct {
	FS      vfs.FS
	Session *Session
	Out     *Printer
	Sys     map[string]string

	reg     *registry
	history *History
	clear   func()
}

// Printer forwards command output to the host sink. Commands append their
// own newlines, one logical line per call where styling matters.
type Printer struct {
	sink Sink
}

func (p *Printer) Print(text string) {
	p.sink(text, StylePlain)
}

func (p *Printer) Printf(format string, a ...any) {
	p.sink(fmt.Sprintf(format, a...), StylePlain)
}

func (p *Printer) Styled(text string, style Style) {
	p.sink(text, style)
}

// errNotFound is the diagnostic shape shared by every command that resolves
// a path operand.
func errNotFound(cmd, path string) error {
	return fmt.Errorf("%s: %s: No such file or directory", cmd, path)
}

// readFileAt resolves operand against the session cwd and reads it.
func readFileAt(ctx context.Context, env *Env, operand string) (string, bool) {
	abs := Resolve(env.Session.Cwd, operand)
	dir, name := Split(abs)
	if name == "" {
		return "", false
	}
	return env.FS.ReadFile(ctx, dir, name)
}

// splitLines cuts content into lines without a trailing phantom line when
// the content ends in a newline.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	n := len(content)
	if content[n-1] == '\n' {
		content = content[:n-1]
	}
	var out []string
	start := 0
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			out = append(out, content[start:i])
			start = i + 1
		}
	}
	return append(out, content[start:])
}
