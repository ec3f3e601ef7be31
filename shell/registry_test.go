package shell

import (
	"context"
	"testing"
)

func noopCmd(context.Context, *Env, []string) error { return nil }

func TestRegistryResolveCaseInsensitive(t *testing.T) {
	r := newRegistry()
	if err := r.register(command{Name: "grep", Run: noopCmd}); err != nil {
		t.Fatalf("register: %v", err)
	}

	for _, name := range []string{"grep", "GREP", "Grep", " grep "} {
		if _, ok := r.resolve(name); !ok {
			t.Fatalf("resolve(%q) = false; want true", name)
		}
	}
	if _, ok := r.resolve("grepx"); ok {
		t.Fatalf("resolve(grepx) = true; want false")
	}
	if _, ok := r.resolve(""); ok {
		t.Fatalf("resolve of empty name = true; want false")
	}
}

func TestRegistryAliases(t *testing.T) {
	r := newRegistry()
	if err := r.register(command{Name: "hexdump", Aliases: []string{"xxd"}, Run: noopCmd}); err != nil {
		t.Fatalf("register: %v", err)
	}

	cmd, ok := r.resolve("XXD")
	if !ok || cmd.Name != "hexdump" {
		t.Fatalf("resolve(XXD) = %q, %v; want hexdump, true", cmd.Name, ok)
	}

	names := r.names()
	if len(names) != 1 || names[0] != "hexdump" {
		t.Fatalf("names() = %v; want [hexdump]", names)
	}
}

func TestRegistryDuplicates(t *testing.T) {
	r := newRegistry()
	if err := r.register(command{Name: "ls", Run: noopCmd}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.register(command{Name: "hexdump", Aliases: []string{"xxd"}, Run: noopCmd}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.register(command{Name: "LS", Run: noopCmd}); err == nil {
		t.Fatalf("register(LS) succeeded; want duplicate error")
	}
	if err := r.register(command{Name: "dir", Aliases: []string{"ls"}, Run: noopCmd}); err == nil {
		t.Fatalf("register alias over existing name succeeded; want error")
	}
	if err := r.register(command{Name: "xxd", Run: noopCmd}); err == nil {
		t.Fatalf("register name over existing alias succeeded; want error")
	}
	if cmd, ok := r.resolve("xxd"); !ok || cmd.Name != "hexdump" {
		t.Fatalf("resolve(xxd) = %q, %v; want hexdump, true", cmd.Name, ok)
	}
	if err := r.register(command{Name: ""}); err == nil {
		t.Fatalf("register empty name succeeded; want error")
	}
	if err := r.register(command{Name: "x"}); err == nil {
		t.Fatalf("register without handler succeeded; want error")
	}
}

func TestRegistryRejectedRegisterLeavesNoTrace(t *testing.T) {
	r := newRegistry()
	if err := r.register(command{Name: "ls", Run: noopCmd}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := r.register(command{Name: "dir", Aliases: []string{"d", "ls"}, Run: noopCmd}); err == nil {
		t.Fatalf("register with clashing alias succeeded; want error")
	}
	if _, ok := r.resolve("dir"); ok {
		t.Fatalf("resolve(dir) = true after rejected register; want false")
	}
	if _, ok := r.resolve("d"); ok {
		t.Fatalf("resolve(d) = true after rejected register; want false")
	}

	// The fixed spec must now go through cleanly.
	if err := r.register(command{Name: "dir", Aliases: []string{"d"}, Run: noopCmd}); err != nil {
		t.Fatalf("register after fixing aliases: %v", err)
	}
	if cmd, ok := r.resolve("d"); !ok || cmd.Name != "dir" {
		t.Fatalf("resolve(d) = %q, %v; want dir, true", cmd.Name, ok)
	}
}

func TestRegistryUnregister(t *testing.T) {
	r := newRegistry()
	if err := r.register(command{Name: "hexdump", Aliases: []string{"xxd"}, Run: noopCmd}); err != nil {
		t.Fatalf("register: %v", err)
	}
	r.unregister("hexdump")
	if _, ok := r.resolve("hexdump"); ok {
		t.Fatalf("resolve(hexdump) after unregister = true; want false")
	}
	if _, ok := r.resolve("xxd"); ok {
		t.Fatalf("resolve(xxd) after unregister = true; want false")
	}
}

func TestRegistryMatches(t *testing.T) {
	r := newRegistry()
	for _, name := range []string{"ls", "ln", "grep", "cat"} {
		if err := r.register(command{Name: name, Run: noopCmd}); err != nil {
			t.Fatalf("register(%q): %v", name, err)
		}
	}

	got := r.matches("l")
	want := []string{"ln", "ls"}
	if len(got) != len(want) {
		t.Fatalf("matches(l) = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("matches(l)[%d] = %q; want %q", i, got[i], want[i])
		}
	}
	if got := r.matches(""); got != nil {
		t.Fatalf("matches of empty prefix = %v; want nil", got)
	}
}
