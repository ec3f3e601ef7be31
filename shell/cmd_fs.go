package shell

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"termlab/vfs"
)

// lsDate is the synthesized timestamp for long listings. The tree has no
// clock, so every entry shows the same one.
const lsDate = "Mar  4 09:12"

func registerFSCommands(r *registry) error {
	for _, cmd := range []command{
		{Name: "cd", Usage: "cd [dir]", Desc: "Change the working directory.", Args: argDirs, Run: cmdCd},
		{Name: "pwd", Usage: "pwd", Desc: "Print the working directory.", Run: cmdPwd},
		{Name: "ls", Usage: "ls [-l] [-a] [path]", Desc: "List directory contents.",
			Options: []Option{{"-a", "include hidden entries"}, {"-l", "long listing"}}, Run: cmdLs},
		{Name: "cat", Usage: "cat <file...>", Desc: "Print file contents.", Run: cmdCat},
		{Name: "find", Usage: "find [path] [-name <glob>] [-type f|d]", Desc: "Walk the tree and print matching paths.",
			Options: []Option{{"-name", "match base names against a glob"}, {"-type", "keep only files (f) or directories (d)"}}, Run: cmdFind},
		{Name: "stat", Usage: "stat <path>", Desc: "Show file metadata.", Run: cmdStat},
	} {
		if err := r.register(cmd); err != nil {
			return err
		}
	}
	return nil
}

func cmdCd(ctx context.Context, env *Env, args []string) error {
	if len(args) > 1 {
		return errors.New("usage: cd [dir]")
	}
	target := env.Session.Home
	if len(args) == 1 {
		target = args[0]
	}

	abs := Resolve(env.Session.Cwd, target)
	if !env.FS.DirExists(ctx, abs) {
		dir, name := Split(abs)
		if name != "" && env.FS.FileExists(ctx, dir, name) {
			return fmt.Errorf("cd: %s: Not a directory", target)
		}
		return errNotFound("cd", target)
	}
	env.Session.Cwd = abs
	return nil
}

func cmdPwd(_ context.Context, env *Env, args []string) error {
	if len(args) != 0 {
		return errors.New("usage: pwd")
	}
	env.Out.Print(env.Session.Cwd + "\n")
	return nil
}

func cmdLs(ctx context.Context, env *Env, args []string) error {
	long := false
	all := false
	var target string
	for _, a := range args {
		if strings.HasPrefix(a, "-") && len(a) > 1 {
			for _, ch := range a[1:] {
				switch ch {
				case 'l':
					long = true
				case 'a':
					all = true
				default:
					return errors.New("usage: ls [-l] [-a] [path]")
				}
			}
			continue
		}
		if target != "" {
			return errors.New("usage: ls [-l] [-a] [path]")
		}
		target = a
	}
	if target == "" {
		target = "."
	}

	abs := Resolve(env.Session.Cwd, target)
	if !env.FS.DirExists(ctx, abs) {
		dir, name := Split(abs)
		if name != "" && env.FS.FileExists(ctx, dir, name) {
			// ls on a plain file prints the operand itself.
			if long {
				content, _ := env.FS.ReadFile(ctx, dir, name)
				env.Out.Print(lsLongLine(vfs.Entry{Name: target, Type: vfs.EntryFile, Size: len(content)}, env.Session.User) + "\n")
			} else {
				env.Out.Print(target + "\n")
			}
			return nil
		}
		return errNotFound("ls", target)
	}

	for _, e := range env.FS.List(ctx, abs, all) {
		line := e.Name
		if long {
			line = lsLongLine(e, env.Session.User)
		}
		switch {
		case e.Type == vfs.EntryDir:
			env.Out.Styled(line+"\n", StyleDir)
		case e.Suspicious:
			env.Out.Styled(line+"\n", StyleAlert)
		default:
			env.Out.Print(line + "\n")
		}
	}
	return nil
}

func lsLongLine(e vfs.Entry, owner string) string {
	mode := "-rw-r--r--"
	links := 1
	if e.Type == vfs.EntryDir {
		mode = "drwxr-xr-x"
		links = 2
	}
	return fmt.Sprintf("%s %d %s %s %5d %s %s", mode, links, owner, owner, e.Size, lsDate, e.Name)
}

func cmdCat(ctx context.Context, env *Env, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: cat <file...>")
	}
	for _, operand := range args {
		abs := Resolve(env.Session.Cwd, operand)
		if env.FS.DirExists(ctx, abs) {
			return fmt.Errorf("cat: %s: Is a directory", operand)
		}
		content, ok := readFileAt(ctx, env, operand)
		if !ok {
			return errNotFound("cat", operand)
		}
		env.Out.Print(content)
		if content != "" && !strings.HasSuffix(content, "\n") {
			env.Out.Print("\n")
		}
	}
	return nil
}

func cmdFind(ctx context.Context, env *Env, args []string) error {
	start := "."
	var nameGlob string
	var typeFilter byte
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-name":
			if i+1 >= len(args) {
				return errors.New("usage: find [path] [-name <glob>] [-type f|d]")
			}
			nameGlob = args[i+1]
			i++
		case "-type":
			if i+1 >= len(args) || (args[i+1] != "f" && args[i+1] != "d") {
				return errors.New("usage: find [path] [-name <glob>] [-type f|d]")
			}
			typeFilter = args[i+1][0]
			i++
		default:
			if strings.HasPrefix(args[i], "-") {
				return errors.New("usage: find [path] [-name <glob>] [-type f|d]")
			}
			start = args[i]
		}
	}

	var nameRe *regexp.Regexp
	if nameGlob != "" {
		re, err := globRegexp(nameGlob)
		if err != nil {
			return fmt.Errorf("find: invalid glob %q", nameGlob)
		}
		nameRe = re
	}

	root := Resolve(env.Session.Cwd, start)
	rootIsDir := env.FS.DirExists(ctx, root)
	if !rootIsDir {
		dir, name := Split(root)
		if name == "" || !env.FS.FileExists(ctx, dir, name) {
			return errNotFound("find", start)
		}
	}

	match := func(abs string, isDir bool) bool {
		if typeFilter == 'f' && isDir {
			return false
		}
		if typeFilter == 'd' && !isDir {
			return false
		}
		if nameRe == nil {
			return true
		}
		_, base := Split(abs)
		if base == "" {
			base = "/"
		}
		return nameRe.MatchString(base)
	}

	findWalk(ctx, env, root, rootIsDir, match)
	return nil
}

func findWalk(ctx context.Context, env *Env, abs string, isDir bool, match func(string, bool) bool) {
	if match(abs, isDir) {
		env.Out.Print(abs + "\n")
	}
	if !isDir {
		return
	}
	for _, e := range env.FS.List(ctx, abs, true) {
		findWalk(ctx, env, Join(abs, e.Name), e.Type == vfs.EntryDir, match)
	}
}

func globRegexp(glob string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")
	for _, r := range glob {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}

func cmdStat(ctx context.Context, env *Env, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: stat <path>")
	}
	abs := Resolve(env.Session.Cwd, args[0])
	_, base := Split(abs)
	if base == "" {
		base = "/"
	}

	uid := 1000
	if env.Session.User == "root" {
		uid = 0
	}

	if env.FS.DirExists(ctx, abs) {
		env.Out.Printf("  File: %s\n", base)
		env.Out.Printf("  Size: %-10d Blocks: 8          IO Block: 4096   directory\n", 4096)
		env.Out.Printf("Access: (0755/drwxr-xr-x)  Uid: (%5d/%8s)   Gid: (%5d/%8s)\n", uid, env.Session.User, uid, env.Session.User)
		env.Out.Printf("Modify: 2024-03-04 09:12:00.000000000 +0000\n")
		return nil
	}

	content, ok := readFileAt(ctx, env, args[0])
	if !ok {
		return errNotFound("stat", args[0])
	}
	env.Out.Printf("  File: %s\n", base)
	env.Out.Printf("  Size: %-10d Blocks: 8          IO Block: 4096   regular file\n", len(content))
	env.Out.Printf("Access: (0644/-rw-r--r--)  Uid: (%5d/%8s)   Gid: (%5d/%8s)\n", uid, env.Session.User, uid, env.Session.User)
	env.Out.Printf("Modify: 2024-03-04 09:12:00.000000000 +0000\n")
	return nil
}
