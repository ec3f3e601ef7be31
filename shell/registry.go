package shell

import (
	"fmt"
	"sort"
	"strings"
)

// registry maps command names and aliases to their definitions. Lookup is
// case-insensitive; names are stored lowercase.
type registry struct {
	primary map[string]command
	lookup  map[string]string
}

func newRegistry() *registry {
	return &registry{
		primary: make(map[string]command),
		lookup:  make(map[string]string),
	}
}

// register validates cmd and installs it under its name and aliases. Every
// claimed key is checked against the registry (and against the others) before
// anything is written, so a rejected registration leaves no trace.
func (r *registry) register(cmd command) error {
	cmd.Name = strings.ToLower(strings.TrimSpace(cmd.Name))
	if cmd.Name == "" {
		return fmt.Errorf("shell registry: empty command name")
	}
	if cmd.Run == nil {
		return fmt.Errorf("shell registry: %q has no handler", cmd.Name)
	}

	keys := []string{cmd.Name}
	for _, alias := range cmd.Aliases {
		alias = strings.ToLower(strings.TrimSpace(alias))
		if alias == "" {
			continue
		}
		keys = append(keys, alias)
	}
	claimed := make(map[string]bool, len(keys))
	for i, key := range keys {
		if _, ok := r.lookup[key]; ok || claimed[key] {
			if i == 0 {
				return fmt.Errorf("shell registry: duplicate command %q", key)
			}
			return fmt.Errorf("shell registry: duplicate alias %q", key)
		}
		claimed[key] = true
	}

	r.primary[cmd.Name] = cmd
	for _, key := range keys {
		r.lookup[key] = cmd.Name
	}
	return nil
}

func (r *registry) unregister(name string) {
	name = strings.ToLower(strings.TrimSpace(name))
	cmd, ok := r.primary[name]
	if !ok {
		return
	}
	delete(r.primary, name)
	delete(r.lookup, name)
	for _, alias := range cmd.Aliases {
		delete(r.lookup, strings.ToLower(strings.TrimSpace(alias)))
	}
}

func (r *registry) resolve(name string) (command, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return command{}, false
	}
	if primary, ok := r.lookup[name]; ok {
		cmd, ok := r.primary[primary]
		return cmd, ok
	}
	return command{}, false
}

func (r *registry) names() []string {
	out := make([]string, 0, len(r.primary))
	for name := range r.primary {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (r *registry) matches(prefix string) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return nil
	}

	var out []string
	for _, name := range r.names() {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	return out
}
