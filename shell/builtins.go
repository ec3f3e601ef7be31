package shell

// registerBuiltins installs the full built-in catalog into r.
func registerBuiltins(r *registry) error {
	for _, fn := range []func(*registry) error{
		registerCoreCommands,
		registerFSCommands,
		registerTextCommands,
		registerGrepCommand,
		registerSedCommand,
		registerAwkCommand,
		registerBinaryCommands,
		registerSysCommands,
	} {
		if err := fn(r); err != nil {
			return err
		}
	}
	return nil
}

// CommandInfo is a read-only descriptor of a registered command.
type CommandInfo struct {
	Name    string
	Aliases []string
	Usage   string
	Desc    string
	Options []Option
}

func describe(cmd command) CommandInfo {
	return CommandInfo{
		Name:    cmd.Name,
		Aliases: cmd.Aliases,
		Usage:   cmd.Usage,
		Desc:    cmd.Desc,
		Options: cmd.Options,
	}
}

// Catalog lists every built-in command, sorted by name.
func Catalog() []CommandInfo {
	r := newRegistry()
	if err := registerBuiltins(r); err != nil {
		panic(err)
	}
	out := make([]CommandInfo, 0, len(r.primary))
	for _, name := range r.names() {
		cmd, _ := r.resolve(name)
		out = append(out, describe(cmd))
	}
	return out
}

// IsBuiltin reports whether name (or an alias) refers to a built-in.
func IsBuiltin(name string) bool {
	r := newRegistry()
	if err := registerBuiltins(r); err != nil {
		panic(err)
	}
	_, ok := r.resolve(name)
	return ok
}
