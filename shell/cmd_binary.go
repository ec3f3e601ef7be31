package shell

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

func registerBinaryCommands(r *registry) error {
	for _, cmd := range []command{
		{Name: "hexdump", Aliases: []string{"xxd"}, Usage: "hexdump <file>", Desc: "Dump a file as hex and ASCII.", Run: cmdHexdump},
		{Name: "base64", Usage: "base64 [-d] <file>", Desc: "Base64 encode or decode a file.",
			Options: []Option{{"-d", "decode"}}, Run: cmdBase64},
		{Name: "strings", Usage: "strings <file>", Desc: "Print printable character runs.", Run: cmdStrings},
	} {
		if err := r.register(cmd); err != nil {
			return err
		}
	}
	return nil
}

func cmdHexdump(ctx context.Context, env *Env, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: hexdump <file>")
	}
	content, ok := readFileAt(ctx, env, args[0])
	if !ok {
		return errNotFound("hexdump", args[0])
	}

	b := []byte(content)
	for off := 0; off < len(b); off += 16 {
		end := off + 16
		if end > len(b) {
			end = len(b)
		}
		env.Out.Print(hexdumpRow(off, b[off:end]) + "\n")
	}
	env.Out.Printf("%08x\n", len(b))
	return nil
}

// hexdumpRow renders one 16-byte row: offset, hex bytes split into two
// groups of eight, then the ASCII gutter.
func hexdumpRow(off int, chunk []byte) string {
	var hexCol strings.Builder
	for i := 0; i < 16; i++ {
		if i == 8 {
			hexCol.WriteByte(' ')
		}
		if i < len(chunk) {
			fmt.Fprintf(&hexCol, "%02x ", chunk[i])
		} else {
			hexCol.WriteString("   ")
		}
	}

	ascii := make([]byte, len(chunk))
	for i, c := range chunk {
		if c >= 0x20 && c < 0x7f {
			ascii[i] = c
		} else {
			ascii[i] = '.'
		}
	}
	return fmt.Sprintf("%08x  %s |%s|", off, hexCol.String(), ascii)
}

func cmdBase64(ctx context.Context, env *Env, args []string) error {
	decode := false
	var file string
	for _, a := range args {
		switch {
		case a == "-d":
			decode = true
		case strings.HasPrefix(a, "-") && len(a) > 1:
			return errors.New("usage: base64 [-d] <file>")
		default:
			if file != "" {
				return errors.New("usage: base64 [-d] <file>")
			}
			file = a
		}
	}
	if file == "" {
		return errors.New("usage: base64 [-d] <file>")
	}

	content, ok := readFileAt(ctx, env, file)
	if !ok {
		return errNotFound("base64", file)
	}

	if decode {
		compact := strings.Map(func(r rune) rune {
			if r == '\n' || r == '\r' || r == ' ' || r == '\t' {
				return -1
			}
			return r
		}, content)
		raw, err := base64.StdEncoding.DecodeString(compact)
		if err != nil {
			return errors.New("base64: invalid input")
		}
		env.Out.Print(string(raw))
		if len(raw) > 0 && raw[len(raw)-1] != '\n' {
			env.Out.Print("\n")
		}
		return nil
	}

	enc := base64.StdEncoding.EncodeToString([]byte(content))
	for len(enc) > 76 {
		env.Out.Print(enc[:76] + "\n")
		enc = enc[76:]
	}
	env.Out.Print(enc + "\n")
	return nil
}

func cmdStrings(ctx context.Context, env *Env, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: strings <file>")
	}
	content, ok := readFileAt(ctx, env, args[0])
	if !ok {
		return errNotFound("strings", args[0])
	}

	const minRun = 4
	var run strings.Builder
	flush := func() {
		if run.Len() >= minRun {
			env.Out.Print(run.String() + "\n")
		}
		run.Reset()
	}
	for i := 0; i < len(content); i++ {
		c := content[i]
		if c >= 0x20 && c < 0x7f || c == '\t' {
			run.WriteByte(c)
			continue
		}
		flush()
	}
	flush()
	return nil
}
