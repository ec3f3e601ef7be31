package shell

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

func registerTextCommands(r *registry) error {
	for _, cmd := range []command{
		{Name: "head", Usage: "head [-n N] <file>", Desc: "Print the first N lines.",
			Options: []Option{{"-n", "number of lines"}}, Run: cmdHead},
		{Name: "tail", Usage: "tail [-n N] <file>", Desc: "Print the last N lines.",
			Options: []Option{{"-n", "number of lines"}}, Run: cmdTail},
		{Name: "wc", Usage: "wc [-lwcm] <file...>", Desc: "Count lines, words, bytes.",
			Options: []Option{{"-c", "bytes"}, {"-l", "lines"}, {"-m", "characters"}, {"-w", "words"}}, Run: cmdWc},
		{Name: "cut", Usage: "cut -c <list> | -f <list> [-d <delim>] [-s] <file>", Desc: "Select character or field columns.",
			Options: []Option{{"-c", "character positions"}, {"-d", "field delimiter"}, {"-f", "field numbers"}, {"-s", "skip lines without the delimiter"}}, Run: cmdCut},
		{Name: "sort", Usage: "sort [-r] [-n] [-u] [-k N] <file>", Desc: "Sort lines.",
			Options: []Option{{"-k", "sort by the Nth whitespace field"}, {"-n", "numeric compare"}, {"-r", "reverse"}, {"-u", "drop duplicate keys"}}, Run: cmdSort},
		{Name: "uniq", Usage: "uniq [-cdui] <file>", Desc: "Collapse duplicate lines, keeping first-seen order.",
			Options: []Option{{"-c", "prefix occurrence counts"}, {"-d", "only repeated lines"}, {"-i", "ignore case"}, {"-u", "only unique lines"}}, Run: cmdUniq},
	} {
		if err := r.register(cmd); err != nil {
			return err
		}
	}
	return nil
}

func parseHeadTailArgs(name string, args []string) (n int, file string, err error) {
	usage := fmt.Sprintf("usage: %s [-n N] <file>", name)
	n = 10
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "-n":
			if i+1 >= len(args) {
				return 0, "", errors.New(usage)
			}
			parsed, perr := strconv.Atoi(args[i+1])
			if perr != nil || parsed < 0 {
				return 0, "", fmt.Errorf("%s: invalid line count %q", name, args[i+1])
			}
			n = parsed
			i++
		case strings.HasPrefix(a, "-n") && len(a) > 2:
			parsed, perr := strconv.Atoi(a[2:])
			if perr != nil || parsed < 0 {
				return 0, "", fmt.Errorf("%s: invalid line count %q", name, a[2:])
			}
			n = parsed
		case strings.HasPrefix(a, "-") && len(a) > 1:
			return 0, "", errors.New(usage)
		default:
			if file != "" {
				return 0, "", errors.New(usage)
			}
			file = a
		}
	}
	if file == "" {
		return 0, "", errors.New(usage)
	}
	return n, file, nil
}

func cmdHead(ctx context.Context, env *Env, args []string) error {
	n, file, err := parseHeadTailArgs("head", args)
	if err != nil {
		return err
	}
	content, ok := readFileAt(ctx, env, file)
	if !ok {
		return errNotFound("head", file)
	}
	lines := splitLines(content)
	if n < len(lines) {
		lines = lines[:n]
	}
	for _, line := range lines {
		env.Out.Print(line + "\n")
	}
	return nil
}

func cmdTail(ctx context.Context, env *Env, args []string) error {
	n, file, err := parseHeadTailArgs("tail", args)
	if err != nil {
		return err
	}
	content, ok := readFileAt(ctx, env, file)
	if !ok {
		return errNotFound("tail", file)
	}
	lines := splitLines(content)
	if n < len(lines) {
		lines = lines[len(lines)-n:]
	}
	for _, line := range lines {
		env.Out.Print(line + "\n")
	}
	return nil
}

func cmdWc(ctx context.Context, env *Env, args []string) error {
	var showLines, showWords, showBytes, showChars bool
	var files []string
	for _, a := range args {
		if strings.HasPrefix(a, "-") && len(a) > 1 {
			for _, ch := range a[1:] {
				switch ch {
				case 'l':
					showLines = true
				case 'w':
					showWords = true
				case 'c':
					showBytes = true
				case 'm':
					showChars = true
				default:
					return errors.New("usage: wc [-lwcm] <file...>")
				}
			}
			continue
		}
		files = append(files, a)
	}
	if len(files) == 0 {
		return errors.New("usage: wc [-lwcm] <file...>")
	}
	if !showLines && !showWords && !showBytes && !showChars {
		showLines, showWords, showBytes = true, true, true
	}

	type counts struct{ lines, words, bytes, chars int }
	format := func(c counts, label string) string {
		var cols []string
		if showLines {
			cols = append(cols, fmt.Sprintf("%7d", c.lines))
		}
		if showWords {
			cols = append(cols, fmt.Sprintf("%7d", c.words))
		}
		if showChars {
			cols = append(cols, fmt.Sprintf("%7d", c.chars))
		}
		if showBytes {
			cols = append(cols, fmt.Sprintf("%7d", c.bytes))
		}
		return strings.Join(cols, "") + " " + label
	}

	var total counts
	for _, file := range files {
		content, ok := readFileAt(ctx, env, file)
		if !ok {
			return errNotFound("wc", file)
		}
		c := counts{
			lines: strings.Count(content, "\n"),
			words: len(strings.Fields(content)),
			bytes: len(content),
			chars: utf8.RuneCountInString(content),
		}
		total.lines += c.lines
		total.words += c.words
		total.bytes += c.bytes
		total.chars += c.chars
		env.Out.Print(format(c, file) + "\n")
	}
	if len(files) > 1 {
		env.Out.Print(format(total, "total") + "\n")
	}
	return nil
}

type cutRange struct {
	lo, hi int // hi == 0 means open-ended
}

func (r cutRange) contains(i int) bool {
	return i >= r.lo && (r.hi == 0 || i <= r.hi)
}

func parseCutList(list string) ([]cutRange, error) {
	var out []cutRange
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("cut: invalid list %q", list)
		}
		lo, hi, isRange := strings.Cut(part, "-")
		r := cutRange{}
		switch {
		case !isRange:
			n, err := strconv.Atoi(lo)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("cut: invalid list %q", list)
			}
			r = cutRange{lo: n, hi: n}
		case lo == "" && hi == "":
			return nil, fmt.Errorf("cut: invalid list %q", list)
		case lo == "":
			n, err := strconv.Atoi(hi)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("cut: invalid list %q", list)
			}
			r = cutRange{lo: 1, hi: n}
		case hi == "":
			n, err := strconv.Atoi(lo)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("cut: invalid list %q", list)
			}
			r = cutRange{lo: n, hi: 0}
		default:
			a, err1 := strconv.Atoi(lo)
			b, err2 := strconv.Atoi(hi)
			if err1 != nil || err2 != nil || a < 1 || b < a {
				return nil, fmt.Errorf("cut: invalid list %q", list)
			}
			r = cutRange{lo: a, hi: b}
		}
		out = append(out, r)
	}
	return out, nil
}

func cutSelected(ranges []cutRange, i int) bool {
	for _, r := range ranges {
		if r.contains(i) {
			return true
		}
	}
	return false
}

func cmdCut(ctx context.Context, env *Env, args []string) error {
	const usage = "usage: cut -c <list> | -f <list> [-d <delim>] [-s] <file>"
	var charList, fieldList, delim string
	suppress := false
	var rest []string

	for i := 0; i < len(args); i++ {
		a := args[i]
		value := func(attached string) (string, bool) {
			if attached != "" {
				return attached, true
			}
			if i+1 >= len(args) {
				return "", false
			}
			i++
			return args[i], true
		}
		switch {
		case a == "-s":
			suppress = true
		case strings.HasPrefix(a, "-c"):
			v, ok := value(a[2:])
			if !ok {
				return errors.New(usage)
			}
			charList = v
		case strings.HasPrefix(a, "-f"):
			v, ok := value(a[2:])
			if !ok {
				return errors.New(usage)
			}
			fieldList = v
		case strings.HasPrefix(a, "-d"):
			v, ok := value(a[2:])
			if !ok {
				return errors.New(usage)
			}
			delim = stripQuotes(v)
		case strings.HasPrefix(a, "-") && len(a) > 1:
			return errors.New(usage)
		default:
			rest = append(rest, a)
		}
	}
	if (charList == "") == (fieldList == "") || len(rest) != 1 {
		return errors.New(usage)
	}

	content, ok := readFileAt(ctx, env, rest[0])
	if !ok {
		return errNotFound("cut", rest[0])
	}
	lines := splitLines(content)

	if charList != "" {
		ranges, err := parseCutList(charList)
		if err != nil {
			return err
		}
		for _, line := range lines {
			var b strings.Builder
			for i, r := range []rune(line) {
				if cutSelected(ranges, i+1) {
					b.WriteRune(r)
				}
			}
			env.Out.Print(b.String() + "\n")
		}
		return nil
	}

	ranges, err := parseCutList(fieldList)
	if err != nil {
		return err
	}
	if delim == "" {
		delim = "\t"
	}
	for _, line := range lines {
		if !strings.Contains(line, delim) {
			if !suppress {
				env.Out.Print(line + "\n")
			}
			continue
		}
		fields := strings.Split(line, delim)
		var picked []string
		for i, f := range fields {
			if cutSelected(ranges, i+1) {
				picked = append(picked, f)
			}
		}
		env.Out.Print(strings.Join(picked, delim) + "\n")
	}
	return nil
}

func cmdSort(ctx context.Context, env *Env, args []string) error {
	const usage = "usage: sort [-r] [-n] [-u] [-k N] <file>"
	var reverse, numeric, unique bool
	keyField := 0
	var rest []string

	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "-k":
			if i+1 >= len(args) {
				return errors.New(usage)
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n < 1 {
				return fmt.Errorf("sort: invalid field %q", args[i+1])
			}
			keyField = n
			i++
		case strings.HasPrefix(a, "-k") && len(a) > 2:
			n, err := strconv.Atoi(a[2:])
			if err != nil || n < 1 {
				return fmt.Errorf("sort: invalid field %q", a[2:])
			}
			keyField = n
		case strings.HasPrefix(a, "-") && len(a) > 1:
			for _, ch := range a[1:] {
				switch ch {
				case 'r':
					reverse = true
				case 'n':
					numeric = true
				case 'u':
					unique = true
				default:
					return errors.New(usage)
				}
			}
		default:
			rest = append(rest, a)
		}
	}
	if len(rest) != 1 {
		return errors.New(usage)
	}

	content, ok := readFileAt(ctx, env, rest[0])
	if !ok {
		return errNotFound("sort", rest[0])
	}
	lines := splitLines(content)

	key := func(line string) string {
		if keyField == 0 {
			return line
		}
		fields := strings.Fields(line)
		if keyField > len(fields) {
			return ""
		}
		return fields[keyField-1]
	}

	less := func(a, b string) bool {
		ka, kb := key(a), key(b)
		if numeric {
			na, nb := leadingNumber(ka), leadingNumber(kb)
			if na != nb {
				return na < nb
			}
			return ka < kb
		}
		return ka < kb
	}

	sort.SliceStable(lines, func(i, j int) bool {
		if reverse {
			return less(lines[j], lines[i])
		}
		return less(lines[i], lines[j])
	})

	var lastKey string
	first := true
	for _, line := range lines {
		if unique {
			k := key(line)
			if numeric {
				k = strconv.FormatFloat(leadingNumber(k), 'g', -1, 64)
			}
			if !first && k == lastKey {
				continue
			}
			lastKey = k
			first = false
		}
		env.Out.Print(line + "\n")
	}
	return nil
}

// leadingNumber parses the numeric prefix of s the way sort -n does.
// Strings without one count as zero.
func leadingNumber(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	seenDigit := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch == '-' && i == 0 {
			end = i + 1
			continue
		}
		if ch == '.' || ch >= '0' && ch <= '9' {
			if ch != '.' {
				seenDigit = true
			}
			end = i + 1
			continue
		}
		break
	}
	if !seenDigit {
		return 0
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}

func cmdUniq(ctx context.Context, env *Env, args []string) error {
	const usage = "usage: uniq [-cdui] <file>"
	var counted, dupsOnly, uniqueOnly, ignoreCase bool
	var rest []string
	for _, a := range args {
		if strings.HasPrefix(a, "-") && len(a) > 1 {
			for _, ch := range a[1:] {
				switch ch {
				case 'c':
					counted = true
				case 'd':
					dupsOnly = true
				case 'u':
					uniqueOnly = true
				case 'i':
					ignoreCase = true
				default:
					return errors.New(usage)
				}
			}
			continue
		}
		rest = append(rest, a)
	}
	if len(rest) != 1 {
		return errors.New(usage)
	}

	content, ok := readFileAt(ctx, env, rest[0])
	if !ok {
		return errNotFound("uniq", rest[0])
	}

	// Duplicates collapse globally, first appearance wins the spot.
	type group struct {
		display string
		count   int
	}
	var order []string
	groups := make(map[string]*group)
	for _, line := range splitLines(content) {
		k := line
		if ignoreCase {
			k = strings.ToLower(line)
		}
		if g, ok := groups[k]; ok {
			g.count++
			continue
		}
		groups[k] = &group{display: line, count: 1}
		order = append(order, k)
	}

	for _, k := range order {
		g := groups[k]
		if dupsOnly && g.count < 2 {
			continue
		}
		if uniqueOnly && g.count > 1 {
			continue
		}
		if counted {
			env.Out.Printf("%7d %s\n", g.count, g.display)
		} else {
			env.Out.Print(g.display + "\n")
		}
	}
	return nil
}
