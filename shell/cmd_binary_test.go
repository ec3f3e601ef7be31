package shell

import (
	"strings"
	"testing"
)

func TestHexdump(t *testing.T) {
	p, cap := newProcessorWithFiles(t, map[string]string{
		"/home/trainee/full.bin":  "0123456789abcdef",
		"/home/trainee/short.bin": "ABC",
		"/home/trainee/mixed.bin": "hi\x00\x01end\n",
	})

	wantLines(t, "hexdump full row", run(t, p, cap, "hexdump full.bin"), []string{
		"00000000  30 31 32 33 34 35 36 37  38 39 61 62 63 64 65 66  |0123456789abcdef|",
		"00000010",
	})

	wantLines(t, "hexdump partial row", run(t, p, cap, "hexdump short.bin"), []string{
		"00000000  41 42 43" + strings.Repeat(" ", 42) + "|ABC|",
		"00000003",
	})

	// Non-printable bytes turn into dots in the gutter.
	got := run(t, p, cap, "hexdump mixed.bin")
	if len(got) != 2 || !strings.HasSuffix(got[0], "|hi..end.|") {
		t.Fatalf("hexdump mixed.bin = %v; want dotted gutter", got)
	}

	// xxd is an alias.
	wantLines(t, "xxd", run(t, p, cap, "xxd short.bin"),
		[]string{"00000000  41 42 43" + strings.Repeat(" ", 42) + "|ABC|", "00000003"})
}

func TestBase64(t *testing.T) {
	p, cap := newProcessorWithFiles(t, map[string]string{
		"/home/trainee/plain.txt":   "hello\n",
		"/home/trainee/token.b64":   "dXBsaW5rIFtVUExJTkstOTldCg==\n",
		"/home/trainee/wrapped.b64": "aGVs\nbG8K\n",
		"/home/trainee/garbage.b64": "!!!not base64!!!\n",
	})

	wantLines(t, "encode", run(t, p, cap, "base64 plain.txt"), []string{"aGVsbG8K"})
	wantLines(t, "decode", run(t, p, cap, "base64 -d token.b64"), []string{"uplink [UPLINK-99]"})

	// Whitespace inside the input is ignored when decoding.
	wantLines(t, "decode wrapped", run(t, p, cap, "base64 -d wrapped.b64"), []string{"hello"})

	errs := runErr(t, p, cap, "base64 -d garbage.b64")
	if len(errs) != 1 || errs[0] != "base64: invalid input" {
		t.Fatalf("decode garbage errors = %v; want [base64: invalid input]", errs)
	}
}

func TestBase64LongOutputWraps(t *testing.T) {
	content := strings.Repeat("x", 100)
	p, cap := newProcessorWithFiles(t, map[string]string{
		"/home/trainee/big.txt": content,
	})

	got := run(t, p, cap, "base64 big.txt")
	if len(got) != 2 {
		t.Fatalf("base64 big.txt = %d lines; want 2", len(got))
	}
	if len(got[0]) != 76 {
		t.Fatalf("first wrapped line length = %d; want 76", len(got[0]))
	}
	joined := strings.Join(got, "")
	if len(joined) != 136 {
		t.Fatalf("encoded length = %d; want 136", len(joined))
	}
}

func TestStrings(t *testing.T) {
	p, cap := newProcessorWithFiles(t, map[string]string{
		"/home/trainee/blob.bin": "\x00\x01flag{here}\x02ab\x03longer run\x04end\x05",
	})

	// Runs shorter than four characters are dropped.
	wantLines(t, "strings blob.bin", run(t, p, cap, "strings blob.bin"),
		[]string{"flag{here}", "longer run"})

	errs := runErr(t, p, cap, "strings")
	if len(errs) != 1 || errs[0] != "usage: strings <file>" {
		t.Fatalf("strings errors = %v; want usage", errs)
	}
}
