package shell

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

func registerSedCommand(r *registry) error {
	return r.register(command{
		Name:  "sed",
		Usage: "sed [-n] <script> <file>",
		Desc:  "Edit file lines with a stream-editor script.",
		Options: []Option{
			{"-n", "suppress automatic printing"},
		},
		Run: cmdSed,
	})
}

type sedOpKind uint8

const (
	sedSubst sedOpKind = iota
	sedDelete
	sedPrint
)

type sedAddrKind uint8

const (
	addrAll sedAddrKind = iota
	addrLine
	addrRange
	addrRegex
)

type sedAddr struct {
	kind   sedAddrKind
	n1, n2 int
	re     *regexp.Regexp
}

func (a sedAddr) matches(lineNo int, line string) bool {
	switch a.kind {
	case addrLine:
		return lineNo == a.n1
	case addrRange:
		return lineNo >= a.n1 && lineNo <= a.n2
	case addrRegex:
		return a.re.MatchString(line)
	default:
		return true
	}
}

// sedScript is one parsed instruction. The script text is parsed exactly
// once per invocation; execution just applies it to each line.
type sedScript struct {
	op       sedOpKind
	addr     sedAddr
	re       *regexp.Regexp
	repl     string
	global   bool
	printSub bool
}

func cmdSed(ctx context.Context, env *Env, args []string) error {
	suppress := false
	var rest []string
	for _, a := range args {
		if a == "-n" {
			suppress = true
			continue
		}
		if strings.HasPrefix(a, "-") && len(a) > 1 {
			return errors.New("usage: sed [-n] <script> <file>")
		}
		rest = append(rest, a)
	}
	if len(rest) < 2 {
		return errors.New("usage: sed [-n] <script> <file>")
	}

	// The tokenizer splits on whitespace, so a script containing spaces
	// arrives as several tokens. Everything before the file operand is the
	// script.
	file := rest[len(rest)-1]
	script := stripQuotes(strings.Join(rest[:len(rest)-1], " "))

	sc, err := parseSedScript(script)
	if err != nil {
		return err
	}
	content, ok := readFileAt(ctx, env, file)
	if !ok {
		return errNotFound("sed", file)
	}

	for i, line := range splitLines(content) {
		selected := sc.addr.matches(i+1, line)
		switch sc.op {
		case sedDelete:
			if !selected && !suppress {
				env.Out.Print(line + "\n")
			}
		case sedPrint:
			if !suppress {
				env.Out.Print(line + "\n")
			}
			if selected {
				env.Out.Print(line + "\n")
			}
		case sedSubst:
			out, substituted := sc.substitute(line)
			if !suppress {
				env.Out.Print(out + "\n")
			}
			if sc.printSub && substituted {
				env.Out.Print(out + "\n")
			}
		}
	}
	return nil
}

func (sc sedScript) substitute(line string) (string, bool) {
	loc := sc.re.FindStringSubmatchIndex(line)
	if loc == nil {
		return line, false
	}
	if sc.global {
		return sc.re.ReplaceAllString(line, sc.repl), true
	}
	var b []byte
	b = append(b, line[:loc[0]]...)
	b = sc.re.ExpandString(b, sc.repl, line, loc)
	b = append(b, line[loc[1]:]...)
	return string(b), true
}

func parseSedScript(script string) (sedScript, error) {
	if script == "" {
		return sedScript{}, errors.New("sed: empty script")
	}
	if script[0] == 's' && len(script) > 1 {
		return parseSedSubst(script)
	}
	return parseSedAddressed(script)
}

func parseSedSubst(script string) (sedScript, error) {
	delim := script[1]
	if delim == '\\' || isAlphaNum(delim) {
		return sedScript{}, fmt.Errorf("sed: invalid script %q", script)
	}
	parts, ok := splitSedBody(script[2:], delim)
	if !ok || len(parts) != 3 {
		return sedScript{}, errors.New("sed: unterminated substitution")
	}

	pat, repl, flags := parts[0], parts[1], parts[2]
	sc := sedScript{op: sedSubst}
	for _, ch := range flags {
		switch ch {
		case 'g':
			sc.global = true
		case 'i':
			pat = "(?i)" + pat
		case 'p':
			sc.printSub = true
		default:
			return sedScript{}, fmt.Errorf("sed: unknown substitution flag %q", string(ch))
		}
	}

	re, err := regexp.Compile(pat)
	if err != nil {
		return sedScript{}, fmt.Errorf("sed: invalid pattern: %v", err)
	}
	sc.re = re
	sc.repl = sedReplacement(repl)
	return sc, nil
}

// splitSedBody cuts pat<d>repl<d>flags at unescaped delimiters. A backslash
// before the delimiter keeps it literal.
func splitSedBody(body string, delim byte) ([]string, bool) {
	parts := []string{""}
	escaped := false
	for i := 0; i < len(body); i++ {
		ch := body[i]
		last := len(parts) - 1
		if escaped {
			if ch == delim {
				parts[last] += string(ch)
			} else {
				parts[last] += "\\" + string(ch)
			}
			escaped = false
			continue
		}
		if ch == '\\' {
			escaped = true
			continue
		}
		if ch == delim {
			parts = append(parts, "")
			continue
		}
		parts[last] += string(ch)
	}
	if escaped || len(parts) != 3 {
		return nil, false
	}
	return parts, true
}

// sedReplacement translates sed replacement syntax (&, \1..\9) into the
// expansion syntax the regexp package understands.
func sedReplacement(repl string) string {
	var b strings.Builder
	for i := 0; i < len(repl); i++ {
		ch := repl[i]
		switch {
		case ch == '\\' && i+1 < len(repl):
			next := repl[i+1]
			i++
			switch {
			case next >= '1' && next <= '9':
				b.WriteString("${" + string(next) + "}")
			case next == '&':
				b.WriteByte('&')
			case next == '\\':
				b.WriteByte('\\')
			default:
				b.WriteByte(next)
			}
		case ch == '&':
			b.WriteString("${0}")
		case ch == '$':
			b.WriteString("$$")
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

func parseSedAddressed(script string) (sedScript, error) {
	op := script[len(script)-1]
	if op != 'd' && op != 'p' {
		return sedScript{}, fmt.Errorf("sed: invalid script %q", script)
	}
	sc := sedScript{op: sedDelete}
	if op == 'p' {
		sc.op = sedPrint
	}

	addr := script[:len(script)-1]
	switch {
	case addr == "":
		sc.addr = sedAddr{kind: addrAll}
	case addr[0] == '/':
		if len(addr) < 2 || addr[len(addr)-1] != '/' {
			return sedScript{}, fmt.Errorf("sed: unterminated address %q", addr)
		}
		re, err := regexp.Compile(addr[1 : len(addr)-1])
		if err != nil {
			return sedScript{}, fmt.Errorf("sed: invalid pattern: %v", err)
		}
		sc.addr = sedAddr{kind: addrRegex, re: re}
	case strings.Contains(addr, ","):
		lo, hi, ok := strings.Cut(addr, ",")
		n1, err1 := strconv.Atoi(lo)
		n2, err2 := strconv.Atoi(hi)
		if !ok || err1 != nil || err2 != nil || n1 < 1 || n2 < n1 {
			return sedScript{}, fmt.Errorf("sed: invalid address %q", addr)
		}
		sc.addr = sedAddr{kind: addrRange, n1: n1, n2: n2}
	default:
		n, err := strconv.Atoi(addr)
		if err != nil || n < 1 {
			return sedScript{}, fmt.Errorf("sed: invalid address %q", addr)
		}
		sc.addr = sedAddr{kind: addrLine, n1: n}
	}
	return sc, nil
}

func isAlphaNum(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9'
}
