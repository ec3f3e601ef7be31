// Package shell implements a simulated command-line shell over a virtual
// file system: a case-insensitive command registry, bounded history with
// cursor navigation, a pure path resolver, tab completion and a catalog of
// POSIX-flavoured text tools. Everything is deterministic and sandboxed;
// output goes to a sink the embedder provides, tagged with presentation
// styles instead of escape codes.
package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"termlab/vfs"
)

// Config assembles a Processor. FS and Output are required; everything
// else has a workable default.
type Config struct {
	FS     vfs.FS
	Output Sink

	User string // defaults to "user"
	Host string // defaults to "localhost"
	Home string // defaults to "/"
	Cwd  string // defaults to Home

	// Name is the shell's own name in diagnostics ("<name>: x: command
	// not found"). Defaults to "bash".
	Name string

	// Commands restricts the built-in catalog to the named subset.
	// Empty means everything.
	Commands []string

	HistoryLimit int

	// Sys overrides the output of system-info commands, keyed by
	// command name.
	Sys map[string]string

	// OnDiscovery fires once per distinct marker token seen in command
	// output.
	OnDiscovery func(token string)

	// OnClear fires when the clear command runs.
	OnClear func()
}

// Processor executes command lines against a session. It is not
// internally synchronized; the embedder serializes calls.
type Processor struct {
	reg     *registry
	hist    *History
	session Session
	env     *Env
	output  Sink
	name    string
	markers *markerScanner
	execBuf strings.Builder
}

// New validates cfg and builds a ready Processor.
func New(cfg Config) (*Processor, error) {
	if cfg.FS == nil {
		return nil, errors.New("shell: Config.FS is required")
	}
	if cfg.Output == nil {
		return nil, errors.New("shell: Config.Output is required")
	}

	reg := newRegistry()
	if err := registerBuiltins(reg); err != nil {
		return nil, err
	}
	if len(cfg.Commands) > 0 {
		enabled := make(map[string]bool, len(cfg.Commands))
		for _, name := range cfg.Commands {
			cmd, ok := reg.resolve(name)
			if !ok {
				return nil, fmt.Errorf("shell: unknown command %q", name)
			}
			enabled[cmd.Name] = true
		}
		for _, name := range reg.names() {
			if !enabled[name] {
				reg.unregister(name)
			}
		}
	}

	p := &Processor{
		reg:     reg,
		hist:    NewHistory(cfg.HistoryLimit),
		output:  cfg.Output,
		name:    cfg.Name,
		markers: newMarkerScanner(cfg.OnDiscovery),
	}
	if p.name == "" {
		p.name = "bash"
	}

	p.session = Session{
		User: valueOr(cfg.User, "user"),
		Host: valueOr(cfg.Host, "localhost"),
		Home: Normalize(valueOr(cfg.Home, "/")),
	}
	p.session.Cwd = p.session.Home
	if cfg.Cwd != "" {
		p.session.Cwd = Normalize(cfg.Cwd)
	}
	if !cfg.FS.DirExists(context.Background(), p.session.Cwd) {
		return nil, fmt.Errorf("shell: working directory %s does not exist", p.session.Cwd)
	}

	p.env = &Env{
		FS:      cfg.FS,
		Session: &p.session,
		Out:     &Printer{sink: p.emitOutput},
		Sys:     cfg.Sys,
		reg:     reg,
		history: p.hist,
		clear:   cfg.OnClear,
	}
	return p, nil
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// Prompt renders "user@host:path$ " with the home directory shown as "~".
func (p *Processor) Prompt() string {
	return fmt.Sprintf("%s@%s:%s$ ", p.session.User, p.session.Host,
		displayPath(p.session.Cwd, p.session.Home))
}

// Session returns a snapshot of the current session state.
func (p *Processor) Session() Session {
	return p.session
}

// CommandSpec declares a command registered at runtime, on top of the
// built-in catalog. Training layers use this for stage-specific commands.
type CommandSpec struct {
	Name    string
	Aliases []string
	Usage   string
	Desc    string
	Options []Option

	// DirArgs restricts positional-argument completion to directories.
	DirArgs bool

	Run func(ctx context.Context, env *Env, args []string) error
}

// Register installs spec. Names clashing with an existing command or alias
// are rejected.
func (p *Processor) Register(spec CommandSpec) error {
	hint := argPaths
	if spec.DirArgs {
		hint = argDirs
	}
	return p.reg.register(command{
		Name:    spec.Name,
		Aliases: spec.Aliases,
		Usage:   spec.Usage,
		Desc:    spec.Desc,
		Options: spec.Options,
		Args:    hint,
		Run:     spec.Run,
	})
}

// Unregister removes the named command and its aliases. Unknown names are
// ignored.
func (p *Processor) Unregister(name string) {
	p.reg.unregister(name)
}

// Lookup reports the descriptor of the named command or alias.
func (p *Processor) Lookup(name string) (CommandInfo, bool) {
	cmd, ok := p.reg.resolve(name)
	if !ok {
		return CommandInfo{}, false
	}
	return describe(cmd), true
}

// Commands lists the registered commands sorted by name.
func (p *Processor) Commands() []CommandInfo {
	out := make([]CommandInfo, 0, len(p.reg.primary))
	for _, name := range p.reg.names() {
		cmd, _ := p.reg.resolve(name)
		out = append(out, describe(cmd))
	}
	return out
}

// HistoryPrevious steps the history cursor back, returning the recalled
// line. It reports false when there is nothing further back.
func (p *Processor) HistoryPrevious() (string, bool) {
	return p.hist.Previous()
}

// HistoryNext steps the history cursor forward. Moving past the newest
// entry yields the empty string (the blank prompt).
func (p *Processor) HistoryNext() (string, bool) {
	return p.hist.Next()
}

// Execute runs one submitted line: echoes it, records history, dispatches
// the command and renders any diagnostic. Malformed input never faults;
// panics from command internals are caught here and reported as a single
// error line. After dispatch the command's output is scanned for marker
// tokens and the history cursor is reset.
func (p *Processor) Execute(ctx context.Context, line string) {
	p.output(p.Prompt()+line+"\n", StyleCommand)

	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return
	}

	p.hist.Append(trimmed)
	defer p.hist.Reset()

	tokens := strings.Fields(trimmed)
	cmd, ok := p.reg.resolve(tokens[0])
	if !ok {
		p.output(fmt.Sprintf("%s: %s: command not found\n", p.name, tokens[0]), StyleError)
		return
	}

	p.execBuf.Reset()
	p.dispatch(ctx, cmd, tokens[1:])
	p.markers.scan(p.execBuf.String())
}

func (p *Processor) dispatch(ctx context.Context, cmd command, args []string) {
	defer func() {
		if r := recover(); r != nil {
			p.output(fmt.Sprintf("%s: %s: unexpected error: %v\n", p.name, cmd.Name, r), StyleError)
		}
	}()
	if err := cmd.Run(ctx, p.env, args); err != nil {
		p.output(err.Error()+"\n", StyleError)
	}
}

// emitOutput is the sink behind Env.Out: it forwards to the host and keeps
// a copy of the execution's output for the marker scan.
func (p *Processor) emitOutput(text string, style Style) {
	p.execBuf.WriteString(text)
	p.output(text, style)
}
