package shell

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"termlab/vfs"
)

func registerGrepCommand(r *registry) error {
	return r.register(command{
		Name:  "grep",
		Usage: "grep [-ilnrv] <pattern> [file...]",
		Desc:  "Search file lines for a pattern.",
		Options: []Option{
			{"-i", "ignore case"},
			{"-l", "print only names of matching files"},
			{"-n", "prefix matches with line numbers"},
			{"-r", "search directories recursively"},
			{"-v", "select non-matching lines"},
		},
		Run: cmdGrep,
	})
}

type grepTarget struct {
	display string
	content string
}

func cmdGrep(ctx context.Context, env *Env, args []string) error {
	var ignoreCase, lineNums, recursive, filesOnly, invert bool
	var rest []string
	for _, a := range args {
		if strings.HasPrefix(a, "-") && len(a) > 1 {
			for _, ch := range a[1:] {
				switch ch {
				case 'i':
					ignoreCase = true
				case 'l':
					filesOnly = true
				case 'n':
					lineNums = true
				case 'r':
					recursive = true
				case 'v':
					invert = true
				default:
					return errors.New("usage: grep [-ilnrv] <pattern> [file...]")
				}
			}
			continue
		}
		rest = append(rest, a)
	}
	if len(rest) == 0 || (len(rest) == 1 && !recursive) {
		return errors.New("usage: grep [-ilnrv] <pattern> [file...]")
	}

	re := compileGrepPattern(stripQuotes(rest[0]), ignoreCase)

	var targets []grepTarget
	operands := rest[1:]
	if len(operands) == 0 {
		grepWalk(ctx, env, env.Session.Cwd, &targets)
	}
	for _, operand := range operands {
		abs := Resolve(env.Session.Cwd, operand)
		if env.FS.DirExists(ctx, abs) {
			if !recursive {
				return fmt.Errorf("grep: %s: Is a directory", operand)
			}
			grepWalk(ctx, env, abs, &targets)
			continue
		}
		content, ok := readFileAt(ctx, env, operand)
		if !ok {
			return errNotFound("grep", operand)
		}
		targets = append(targets, grepTarget{display: operand, content: content})
	}

	withNames := recursive || len(targets) > 1
	for _, tgt := range targets {
		matched := false
		for i, line := range splitLines(tgt.content) {
			if re.MatchString(line) == invert {
				continue
			}
			matched = true
			if filesOnly {
				break
			}
			switch {
			case withNames && lineNums:
				env.Out.Printf("%s:%d:%s\n", tgt.display, i+1, line)
			case withNames:
				env.Out.Printf("%s:%s\n", tgt.display, line)
			case lineNums:
				env.Out.Printf("%d:%s\n", i+1, line)
			default:
				env.Out.Print(line + "\n")
			}
		}
		if filesOnly && matched {
			env.Out.Print(tgt.display + "\n")
		}
	}
	return nil
}

// compileGrepPattern compiles pat as a regular expression, falling back to
// an escaped literal search when the pattern does not parse.
func compileGrepPattern(pat string, ignoreCase bool) *regexp.Regexp {
	expr := pat
	if ignoreCase {
		expr = "(?i)" + expr
	}
	if re, err := regexp.Compile(expr); err == nil {
		return re
	}
	expr = regexp.QuoteMeta(pat)
	if ignoreCase {
		expr = "(?i)" + expr
	}
	return regexp.MustCompile(expr)
}

func grepWalk(ctx context.Context, env *Env, abs string, out *[]grepTarget) {
	for _, e := range env.FS.List(ctx, abs, true) {
		child := Join(abs, e.Name)
		if e.Type == vfs.EntryDir {
			grepWalk(ctx, env, child, out)
			continue
		}
		if content, ok := env.FS.ReadFile(ctx, abs, e.Name); ok {
			*out = append(*out, grepTarget{display: child, content: content})
		}
	}
}
