package shell

import (
	"context"
	"strings"
	"testing"
)

func TestCd(t *testing.T) {
	p, cap := newTestProcessor(t)

	tcs := []struct {
		name string
		line string
		cwd  string
	}{
		{"relative", "cd docs", "/home/trainee/docs"},
		{"dotdot", "cd ..", "/home/trainee"},
		{"absolute", "cd /var/log", "/var/log"},
		{"trailing slash", "cd /etc/", "/etc"},
		{"bare cd goes home", "cd", "/home/trainee"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if errs := runErr(t, p, cap, tc.line); errs != nil {
				t.Fatalf("%q errors = %v; want none", tc.line, errs)
			}
			if got := p.Session().Cwd; got != tc.cwd {
				t.Fatalf("cwd after %q = %q; want %q", tc.line, got, tc.cwd)
			}
		})
	}
}

func TestCdErrors(t *testing.T) {
	p, cap := newTestProcessor(t)

	tcs := []struct {
		line string
		want string
	}{
		{"cd notes.txt", "cd: notes.txt: Not a directory"},
		{"cd /nonexistent", "cd: /nonexistent: No such file or directory"},
		{"cd a b", "usage: cd [dir]"},
	}
	for _, tc := range tcs {
		t.Run(tc.line, func(t *testing.T) {
			errs := runErr(t, p, cap, tc.line)
			if len(errs) != 1 || errs[0] != tc.want {
				t.Fatalf("%q errors = %v; want [%s]", tc.line, errs, tc.want)
			}
			if got := p.Session().Cwd; got != "/home/trainee" {
				t.Fatalf("cwd after failed %q = %q; want unchanged", tc.line, got)
			}
		})
	}
}

func TestLs(t *testing.T) {
	p, cap := newTestProcessor(t)

	// Plain entries only; the directory arrives on the dir style.
	cap.reset()
	p.Execute(context.Background(), "ls")
	wantLines(t, "ls files", cap.styledLines(StylePlain), []string{"data.csv", "notes.txt"})
	wantLines(t, "ls dirs", cap.styledLines(StyleDir), []string{"docs"})

	// Hidden entries appear with -a.
	cap.reset()
	p.Execute(context.Background(), "ls -a")
	wantLines(t, "ls -a files", cap.styledLines(StylePlain), []string{".profile", "data.csv", "notes.txt"})

	// Operands work from anywhere.
	wantLines(t, "ls /etc", run(t, p, cap, "ls /etc"), []string{"passwd"})
}

func TestLsLong(t *testing.T) {
	p, cap := newTestProcessor(t)

	cap.reset()
	p.Execute(context.Background(), "ls -l")
	files := cap.styledLines(StylePlain)
	want := []string{
		"-rw-r--r-- 1 trainee trainee    12 Mar  4 09:12 data.csv",
		"-rw-r--r-- 1 trainee trainee    16 Mar  4 09:12 notes.txt",
	}
	wantLines(t, "ls -l files", files, want)

	dirs := cap.styledLines(StyleDir)
	wantLines(t, "ls -l dirs", dirs,
		[]string{"drwxr-xr-x 2 trainee trainee  4096 Mar  4 09:12 docs"})

	// ls on a plain file prints the operand.
	wantLines(t, "ls file", run(t, p, cap, "ls notes.txt"), []string{"notes.txt"})
	wantLines(t, "ls -l file", run(t, p, cap, "ls -l notes.txt"),
		[]string{"-rw-r--r-- 1 trainee trainee    16 Mar  4 09:12 notes.txt"})
}

func TestLsFlagsCombined(t *testing.T) {
	p, cap := newTestProcessor(t)

	cap.reset()
	p.Execute(context.Background(), "ls -la")
	got := cap.styledLines(StylePlain)
	wantLines(t, "ls -la hidden entry", got, []string{
		"-rw-r--r-- 1 trainee trainee    11 Mar  4 09:12 .profile",
		"-rw-r--r-- 1 trainee trainee    12 Mar  4 09:12 data.csv",
		"-rw-r--r-- 1 trainee trainee    16 Mar  4 09:12 notes.txt",
	})

	errs := runErr(t, p, cap, "ls -z")
	if len(errs) != 1 || errs[0] != "usage: ls [-l] [-a] [path]" {
		t.Fatalf("ls -z errors = %v; want usage", errs)
	}
}

func TestLsSuspiciousEntries(t *testing.T) {
	fs := testFS(t)
	if !fs.MarkSuspicious("/var/log/auth.log", true) {
		t.Fatalf("MarkSuspicious: path missing")
	}
	cap := &capture{}
	p, err := New(Config{FS: fs, Output: cap.sink, Home: "/home/trainee"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	cap.reset()
	p.Execute(context.Background(), "ls /var/log")
	wantLines(t, "suspicious entries", cap.styledLines(StyleAlert), []string{"auth.log"})
	if plain := cap.styledLines(StylePlain); plain != nil {
		t.Fatalf("plain entries = %v; want none", plain)
	}
}

func TestCat(t *testing.T) {
	p, cap := newProcessorWithFiles(t, map[string]string{
		"/home/trainee/a.txt":   "one\ntwo\n",
		"/home/trainee/b.txt":   "three\n",
		"/home/trainee/raw.txt": "no newline",
	})

	wantLines(t, "cat one file", run(t, p, cap, "cat a.txt"), []string{"one", "two"})
	wantLines(t, "cat two files", run(t, p, cap, "cat a.txt b.txt"),
		[]string{"one", "two", "three"})

	// Content without a trailing newline still ends the output line.
	wantLines(t, "cat unterminated", run(t, p, cap, "cat raw.txt"), []string{"no newline"})
}

func TestCatErrors(t *testing.T) {
	p, cap := newTestProcessor(t)

	tcs := []struct {
		line string
		want string
	}{
		{"cat", "usage: cat <file...>"},
		{"cat docs", "cat: docs: Is a directory"},
		{"cat gone.txt", "cat: gone.txt: No such file or directory"},
	}
	for _, tc := range tcs {
		t.Run(tc.line, func(t *testing.T) {
			errs := runErr(t, p, cap, tc.line)
			if len(errs) != 1 || errs[0] != tc.want {
				t.Fatalf("%q errors = %v; want [%s]", tc.line, errs, tc.want)
			}
		})
	}
}

func TestFind(t *testing.T) {
	p, cap := newTestProcessor(t)

	tcs := []struct {
		name string
		line string
		want []string
	}{
		{"name glob", "find . -name *.txt", []string{"/home/trainee/notes.txt"}},
		{"question mark", "find . -name not??.txt", []string{"/home/trainee/notes.txt"}},
		{"subdir match", "find . -name *.md", []string{"/home/trainee/docs/plan.md"}},
		{"type d", "find . -type d", []string{"/home/trainee", "/home/trainee/docs"}},
		{"start path", "find /etc", []string{"/etc", "/etc/passwd"}},
		{"type f filters dirs", "find /etc -type f", []string{"/etc/passwd"}},
		{"file operand", "find notes.txt", []string{"/home/trainee/notes.txt"}},
		{"glob matches nothing", "find . -name *.zip", nil},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			wantLines(t, tc.line, run(t, p, cap, tc.line), tc.want)
		})
	}
}

func TestFindSeesHiddenEntries(t *testing.T) {
	p, cap := newTestProcessor(t)

	got := run(t, p, cap, "find . -name .pro*")
	wantLines(t, "find hidden", got, []string{"/home/trainee/.profile"})
}

func TestFindErrors(t *testing.T) {
	p, cap := newTestProcessor(t)

	tcs := []struct {
		line string
		want string
	}{
		{"find -name", "usage: find [path] [-name <glob>] [-type f|d]"},
		{"find -type x", "usage: find [path] [-name <glob>] [-type f|d]"},
		{"find /gone", "find: /gone: No such file or directory"},
	}
	for _, tc := range tcs {
		t.Run(tc.line, func(t *testing.T) {
			errs := runErr(t, p, cap, tc.line)
			if len(errs) != 1 || errs[0] != tc.want {
				t.Fatalf("%q errors = %v; want [%s]", tc.line, errs, tc.want)
			}
		})
	}
}

func TestStat(t *testing.T) {
	p, cap := newTestProcessor(t)

	file := run(t, p, cap, "stat notes.txt")
	wantFile := []string{
		"  File: notes.txt",
		"  Size: 16         Blocks: 8          IO Block: 4096   regular file",
		"Access: (0644/-rw-r--r--)  Uid: ( 1000/ trainee)   Gid: ( 1000/ trainee)",
		"Modify: 2024-03-04 09:12:00.000000000 +0000",
	}
	wantLines(t, "stat file", file, wantFile)

	dir := run(t, p, cap, "stat docs")
	if len(dir) != 4 || !strings.HasSuffix(dir[1], "directory") {
		t.Fatalf("stat docs = %v; want directory metadata", dir)
	}
	if dir[2] != "Access: (0755/drwxr-xr-x)  Uid: ( 1000/ trainee)   Gid: ( 1000/ trainee)" {
		t.Fatalf("stat docs mode line = %q", dir[2])
	}

	errs := runErr(t, p, cap, "stat gone.txt")
	if len(errs) != 1 || errs[0] != "stat: gone.txt: No such file or directory" {
		t.Fatalf("stat errors = %v; want not-found", errs)
	}
}
