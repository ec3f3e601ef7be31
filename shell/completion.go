package shell

import (
	"context"
	"strings"

	"termlab/vfs"
)

// Completion is the outcome of a tab press: the replacement line, where the
// cursor lands, and the candidates to display when several remain.
type Completion struct {
	Line        string
	Cursor      int
	Suggestions []string
}

// Complete computes tab completion for line with the cursor at the given
// byte offset. It returns nil when there is nothing to do. The first token
// completes against command names, a token starting with "-" against the
// command's declared flags, and everything else against the file tree
// (directory-only for commands that want that). Directory candidates gain a
// trailing slash; a single command or flag match gains a trailing space.
func (p *Processor) Complete(ctx context.Context, line string, cursor int) *Completion {
	if cursor < 0 || cursor > len(line) {
		cursor = len(line)
	}
	if cursor == 0 {
		return nil
	}

	head := line[:cursor]
	tokenStart := strings.LastIndexAny(head, " \t") + 1
	token := head[tokenStart:]

	if strings.TrimSpace(head[:tokenStart]) == "" {
		if token == "" {
			return nil
		}
		cands := p.reg.matches(token)
		return splice(line, tokenStart, cursor, cands, cands, true)
	}

	first := strings.Fields(line)[0]

	if strings.HasPrefix(token, "-") {
		cmd, ok := p.reg.resolve(first)
		if !ok {
			return nil
		}
		var flags []string
		for _, opt := range cmd.Options {
			if strings.HasPrefix(opt.Flag, token) {
				flags = append(flags, opt.Flag)
			}
		}
		return splice(line, tokenStart, cursor, flags, flags, true)
	}

	hint := argPaths
	if cmd, ok := p.reg.resolve(first); ok {
		hint = cmd.Args
	}
	if hint == argCommands {
		cands := p.reg.matches(token)
		return splice(line, tokenStart, cursor, cands, cands, true)
	}

	return p.completePath(ctx, line, tokenStart, cursor, token, hint)
}

func (p *Processor) completePath(ctx context.Context, line string, start, end int, token string, hint argHint) *Completion {
	slash := strings.LastIndexByte(token, '/')
	dirPart := ""
	partial := token
	if slash >= 0 {
		dirPart = token[:slash+1]
		partial = token[slash+1:]
	}

	baseDir := Resolve(p.session.Cwd, dirPart)
	if !p.env.FS.DirExists(ctx, baseDir) {
		return nil
	}

	includeHidden := strings.HasPrefix(partial, ".")
	var full, display []string
	for _, e := range p.env.FS.List(ctx, baseDir, includeHidden) {
		if !strings.HasPrefix(e.Name, partial) {
			continue
		}
		if hint == argDirs && e.Type != vfs.EntryDir {
			continue
		}
		name := e.Name
		if e.Type == vfs.EntryDir {
			name += "/"
		}
		full = append(full, dirPart+name)
		display = append(display, name)
	}
	return splice(line, start, end, full, display, false)
}

// splice folds the candidates into their longest common prefix and swaps it
// in for line[start:end]. A single candidate with addSpace set also gets a
// trailing space so typing can continue with the next argument.
func splice(line string, start, end int, full, display []string, addSpace bool) *Completion {
	if len(full) == 0 {
		return nil
	}

	repl := full[0]
	for _, c := range full[1:] {
		repl = commonPrefix(repl, c)
	}
	if len(full) == 1 && addSpace {
		repl += " "
	}

	newLine := line[:start] + repl + line[end:]
	out := &Completion{Line: newLine, Cursor: start + len(repl)}
	if len(full) > 1 {
		out.Suggestions = display
	}
	if newLine == line && out.Suggestions == nil {
		return nil
	}
	return out
}
