package shell

import (
	"fmt"
	"strings"
	"testing"

	"termlab/vfs"
)

func TestHeadTail(t *testing.T) {
	var lines []string
	for i := 1; i <= 12; i++ {
		lines = append(lines, fmt.Sprintf("l%02d", i))
	}
	p, cap := newProcessorWithFiles(t, map[string]string{
		"/home/trainee/twelve.txt": strings.Join(lines, "\n") + "\n",
	})

	wantLines(t, "head twelve.txt", run(t, p, cap, "head twelve.txt"), lines[:10])
	wantLines(t, "head -n 3", run(t, p, cap, "head -n 3 twelve.txt"), lines[:3])
	wantLines(t, "head -n3", run(t, p, cap, "head -n3 twelve.txt"), lines[:3])
	wantLines(t, "tail twelve.txt", run(t, p, cap, "tail twelve.txt"), lines[2:])
	wantLines(t, "tail -n 2", run(t, p, cap, "tail -n 2 twelve.txt"), lines[10:])
	wantLines(t, "tail -n 0", run(t, p, cap, "tail -n 0 twelve.txt"), nil)
	wantLines(t, "head -n 99", run(t, p, cap, "head -n 99 twelve.txt"), lines)
}

func TestHeadTailErrors(t *testing.T) {
	p, cap := newProcessorWithFiles(t, map[string]string{
		"/home/trainee/a.txt": "x\n",
	})

	tcs := []struct {
		line string
		want string
	}{
		{"head", "usage: head [-n N] <file>"},
		{"head -n x a.txt", `head: invalid line count "x"`},
		{"head -n -1 a.txt", `head: invalid line count "-1"`},
		{"tail missing.txt", "tail: missing.txt: No such file or directory"},
		{"tail a.txt b.txt", "usage: tail [-n N] <file>"},
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

func TestWc(t *testing.T) {
	p, cap := newProcessorWithFiles(t, map[string]string{
		"/home/trainee/notes.txt": "alpha\nbeta\nalpha\n",
		"/home/trainee/a.txt":     "one two\n",
		"/home/trainee/b.txt":     "three\n",
		"/home/trainee/uni.txt":   "héllo\n",
	})

	wantLines(t, "wc -l", run(t, p, cap, "wc -l notes.txt"),
		[]string{"      3 notes.txt"})
	wantLines(t, "wc", run(t, p, cap, "wc notes.txt"),
		[]string{"      3      3     17 notes.txt"})
	wantLines(t, "wc -w", run(t, p, cap, "wc -w a.txt"),
		[]string{"      2 a.txt"})

	// Two operands get a trailing total row.
	wantLines(t, "wc two files", run(t, p, cap, "wc a.txt b.txt"), []string{
		"      1      2      8 a.txt",
		"      1      1      6 b.txt",
		"      2      3     14 total",
	})

	// -m counts runes, -c counts bytes.
	wantLines(t, "wc -m", run(t, p, cap, "wc -m uni.txt"), []string{"      6 uni.txt"})
	wantLines(t, "wc -c", run(t, p, cap, "wc -c uni.txt"), []string{"      7 uni.txt"})
}

func TestCutFields(t *testing.T) {
	p, cap := newProcessorWithFiles(t, map[string]string{
		"/home/trainee/data.csv":  "a,b,c\n1,2,3\n",
		"/home/trainee/mixed.txt": "x,y\nplain\n",
	})

	tcs := []struct {
		name string
		line string
		want []string
	}{
		{"first field", "cut -f1 -d, data.csv", []string{"a", "1"}},
		{"detached value", "cut -f 1 -d , data.csv", []string{"a", "1"}},
		{"field list", "cut -f1,3 -d, data.csv", []string{"a,c", "1,3"}},
		{"open range", "cut -f2- -d, data.csv", []string{"b,c", "2,3"}},
		{"prefix range", "cut -f-2 -d, data.csv", []string{"a,b", "1,2"}},
		{"undelimited passes", "cut -f1 -d, mixed.txt", []string{"x", "plain"}},
		{"undelimited suppressed", "cut -f1 -d, -s mixed.txt", []string{"x"}},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			wantLines(t, tc.line, run(t, p, cap, tc.line), tc.want)
		})
	}
}

func TestCutChars(t *testing.T) {
	p, cap := newProcessorWithFiles(t, map[string]string{
		"/home/trainee/w.txt": "alpha\nbe\n",
	})

	wantLines(t, "cut -c1-2", run(t, p, cap, "cut -c1-2 w.txt"), []string{"al", "be"})
	wantLines(t, "cut -c2,4", run(t, p, cap, "cut -c2,4 w.txt"), []string{"lh", "e"})
}

func TestCutErrors(t *testing.T) {
	p, cap := newProcessorWithFiles(t, map[string]string{
		"/home/trainee/w.txt": "x,y\n",
	})

	tcs := []struct {
		line string
		want string
	}{
		{"cut w.txt", "usage: cut -c <list> | -f <list> [-d <delim>] [-s] <file>"},
		{"cut -c1 -f1 w.txt", "usage: cut -c <list> | -f <list> [-d <delim>] [-s] <file>"},
		{"cut -f0 w.txt", `cut: invalid list "0"`},
		{"cut -f1,x w.txt", `cut: invalid list "1,x"`},
		{"cut -f1 gone.txt", "cut: gone.txt: No such file or directory"},
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

func TestSort(t *testing.T) {
	p, cap := newProcessorWithFiles(t, map[string]string{
		"/home/trainee/fruit.txt": "banana\napple\ncherry\napple\n",
		"/home/trainee/nums.txt":  "10\n9\n2\n",
		"/home/trainee/cols.txt":  "1 bravo\n2 alpha\n3 alpha\n",
	})

	tcs := []struct {
		name string
		line string
		want []string
	}{
		{"lexicographic", "sort fruit.txt", []string{"apple", "apple", "banana", "cherry"}},
		{"reverse", "sort -r fruit.txt", []string{"cherry", "banana", "apple", "apple"}},
		{"unique", "sort -u fruit.txt", []string{"apple", "banana", "cherry"}},
		{"numeric", "sort -n nums.txt", []string{"2", "9", "10"}},
		{"numeric reverse", "sort -rn nums.txt", []string{"10", "9", "2"}},
		{"by field", "sort -k 2 cols.txt", []string{"2 alpha", "3 alpha", "1 bravo"}},
		{"by field attached", "sort -k2 cols.txt", []string{"2 alpha", "3 alpha", "1 bravo"}},
		{"field unique", "sort -u -k 2 cols.txt", []string{"2 alpha", "1 bravo"}},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			wantLines(t, tc.line, run(t, p, cap, tc.line), tc.want)
		})
	}
}

func TestSortUniqueIdempotent(t *testing.T) {
	fs := vfs.NewMemFS()
	if err := fs.AddFile("/home/trainee/fruit.txt", "banana\napple\ncherry\napple\n"); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	cap := &capture{}
	p, err := New(Config{FS: fs, Output: cap.sink, Home: "/home/trainee"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	first := run(t, p, cap, "sort -u fruit.txt")
	if err := fs.AddFile("/home/trainee/once.txt", strings.Join(first, "\n")+"\n"); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	second := run(t, p, cap, "sort once.txt")
	wantLines(t, "plain sort over sort -u output", second, first)
}

func TestUniq(t *testing.T) {
	p, cap := newProcessorWithFiles(t, map[string]string{
		"/home/trainee/dup.txt":  "alpha\nbeta\nalpha\ngamma\nbeta\n",
		"/home/trainee/case.txt": "Red\nred\nBLUE\n",
	})

	tcs := []struct {
		name string
		line string
		want []string
	}{
		{"collapse keeps first-seen order", "uniq dup.txt", []string{"alpha", "beta", "gamma"}},
		{"counts", "uniq -c dup.txt", []string{"      2 alpha", "      2 beta", "      1 gamma"}},
		{"repeated only", "uniq -d dup.txt", []string{"alpha", "beta"}},
		{"unique only", "uniq -u dup.txt", []string{"gamma"}},
		{"case sensitive by default", "uniq case.txt", []string{"Red", "red", "BLUE"}},
		{"ignore case", "uniq -i case.txt", []string{"Red", "BLUE"}},
		{"ignore case counts", "uniq -ci case.txt", []string{"      2 Red", "      1 BLUE"}},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			wantLines(t, tc.line, run(t, p, cap, tc.line), tc.want)
		})
	}

	errs := runErr(t, p, cap, "uniq")
	if len(errs) != 1 || errs[0] != "usage: uniq [-cdui] <file>" {
		t.Fatalf("uniq errors = %v; want usage", errs)
	}
}
