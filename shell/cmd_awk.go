package shell

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

func registerAwkCommand(r *registry) error {
	return r.register(command{
		Name:  "awk",
		Usage: "awk [-F <sep>] <program> <file>",
		Desc:  "Run a field-oriented program over file lines.",
		Options: []Option{
			{"-F", "field separator"},
		},
		Run: cmdAwk,
	})
}

type awkFilterKind uint8

const (
	awkFilterNone awkFilterKind = iota
	awkFilterRegex
	awkFilterNR
)

type awkFilter struct {
	kind awkFilterKind
	re   *regexp.Regexp
	op   string
	n    int
}

func (f awkFilter) matches(lineNo int, line string) bool {
	switch f.kind {
	case awkFilterRegex:
		return f.re.MatchString(line)
	case awkFilterNR:
		switch f.op {
		case "==":
			return lineNo == f.n
		case "!=":
			return lineNo != f.n
		case ">":
			return lineNo > f.n
		case ">=":
			return lineNo >= f.n
		case "<":
			return lineNo < f.n
		case "<=":
			return lineNo <= f.n
		}
		return false
	default:
		return true
	}
}

// awkItem is one element of a print list: a field reference or a literal.
type awkItem struct {
	field int // -1 for literals
	lit   string
}

// awkProgram is the parsed form of the single pattern/action the command
// supports. A nil action prints the whole line.
type awkProgram struct {
	filter awkFilter
	action []awkItem
}

func cmdAwk(ctx context.Context, env *Env, args []string) error {
	sep := ""
	var rest []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "-F":
			if i+1 >= len(args) {
				return errors.New("usage: awk [-F <sep>] <program> <file>")
			}
			sep = stripQuotes(args[i+1])
			i++
		case strings.HasPrefix(a, "-F"):
			sep = stripQuotes(a[2:])
		case strings.HasPrefix(a, "-") && len(a) > 1:
			return errors.New("usage: awk [-F <sep>] <program> <file>")
		default:
			rest = append(rest, a)
		}
	}
	if len(rest) < 2 {
		return errors.New("usage: awk [-F <sep>] <program> <file>")
	}

	file := rest[len(rest)-1]
	src := stripQuotes(strings.Join(rest[:len(rest)-1], " "))

	prog, err := parseAwkProgram(src)
	if err != nil {
		return err
	}
	content, ok := readFileAt(ctx, env, file)
	if !ok {
		return errNotFound("awk", file)
	}

	for i, line := range splitLines(content) {
		if !prog.filter.matches(i+1, line) {
			continue
		}
		env.Out.Print(prog.render(line, sep) + "\n")
	}
	return nil
}

func (p awkProgram) render(line, sep string) string {
	if p.action == nil {
		return line
	}

	var fields []string
	if sep == "" {
		fields = strings.Fields(line)
	} else {
		fields = strings.Split(line, sep)
	}

	parts := make([]string, 0, len(p.action))
	for _, item := range p.action {
		switch {
		case item.field < 0:
			parts = append(parts, item.lit)
		case item.field == 0:
			parts = append(parts, line)
		case item.field <= len(fields):
			parts = append(parts, fields[item.field-1])
		default:
			parts = append(parts, "")
		}
	}
	return strings.Join(parts, " ")
}

var awkNRRe = regexp.MustCompile(`^NR\s*(==|!=|>=|<=|>|<)\s*(\d+)$`)

func parseAwkProgram(src string) (awkProgram, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return awkProgram{}, errors.New("awk: empty program")
	}

	var prog awkProgram
	actionSrc := src

	switch {
	case src[0] == '/':
		end := strings.IndexByte(src[1:], '/')
		if end < 0 {
			return awkProgram{}, errors.New("awk: unterminated pattern")
		}
		re, err := regexp.Compile(src[1 : 1+end])
		if err != nil {
			return awkProgram{}, fmt.Errorf("awk: invalid pattern: %v", err)
		}
		prog.filter = awkFilter{kind: awkFilterRegex, re: re}
		actionSrc = strings.TrimSpace(src[2+end:])
	case strings.HasPrefix(src, "NR"):
		cond := src
		if i := strings.IndexByte(src, '{'); i >= 0 {
			cond = strings.TrimSpace(src[:i])
			actionSrc = src[i:]
		} else {
			actionSrc = ""
		}
		m := awkNRRe.FindStringSubmatch(cond)
		if m == nil {
			return awkProgram{}, fmt.Errorf("awk: syntax error at %q", cond)
		}
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return awkProgram{}, fmt.Errorf("awk: syntax error at %q", cond)
		}
		prog.filter = awkFilter{kind: awkFilterNR, op: m[1], n: n}
	}

	if actionSrc == "" {
		return prog, nil
	}
	action, err := parseAwkAction(actionSrc)
	if err != nil {
		return awkProgram{}, err
	}
	prog.action = action
	return prog, nil
}

func parseAwkAction(src string) ([]awkItem, error) {
	if !strings.HasPrefix(src, "{") || !strings.HasSuffix(src, "}") {
		return nil, fmt.Errorf("awk: syntax error at %q", src)
	}
	body := strings.TrimSpace(src[1 : len(src)-1])
	if body == "" || body == "print" {
		return []awkItem{{field: 0}}, nil
	}
	if !strings.HasPrefix(body, "print ") {
		return nil, fmt.Errorf("awk: syntax error at %q", body)
	}

	list := strings.TrimSpace(body[len("print "):])
	var items []awkItem
	for _, raw := range splitAwkList(list) {
		item := strings.TrimSpace(raw)
		switch {
		case item == "":
			return nil, fmt.Errorf("awk: syntax error at %q", list)
		case item[0] == '$':
			n, err := strconv.Atoi(item[1:])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("awk: invalid field %q", item)
			}
			items = append(items, awkItem{field: n})
		case item[0] == '"':
			if len(item) < 2 || item[len(item)-1] != '"' {
				return nil, fmt.Errorf("awk: unterminated string %q", item)
			}
			items = append(items, awkItem{field: -1, lit: item[1 : len(item)-1]})
		default:
			return nil, fmt.Errorf("awk: syntax error at %q", item)
		}
	}
	return items, nil
}

// splitAwkList cuts a print list at commas that sit outside string literals.
func splitAwkList(list string) []string {
	var out []string
	inStr := false
	start := 0
	for i := 0; i < len(list); i++ {
		switch list[i] {
		case '"':
			inStr = !inStr
		case ',':
			if !inStr {
				out = append(out, list[start:i])
				start = i + 1
			}
		}
	}
	return append(out, list[start:])
}
