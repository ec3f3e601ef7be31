package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

func registerCoreCommands(r *registry) error {
	for _, cmd := range []command{
		{Name: "help", Usage: "help [command]", Desc: "Show available commands.", Args: argCommands, Run: cmdHelp},
		{Name: "echo", Usage: "echo [args...]", Desc: "Print arguments.", Run: cmdEcho},
		{Name: "clear", Usage: "clear", Desc: "Clear the terminal.", Run: cmdClear},
		{Name: "history", Usage: "history", Desc: "Show the command history.", Run: cmdHistory},
	} {
		if err := r.register(cmd); err != nil {
			return err
		}
	}
	return nil
}

func cmdHelp(_ context.Context, env *Env, args []string) error {
	if len(args) == 0 {
		for _, name := range env.reg.names() {
			cmd, ok := env.reg.resolve(name)
			if !ok {
				continue
			}
			env.Out.Printf("%-10s %s\n", cmd.Name, cmd.Desc)
		}
		return nil
	}
	if len(args) != 1 {
		return errors.New("usage: help [command]")
	}

	cmd, ok := env.reg.resolve(args[0])
	if !ok {
		return fmt.Errorf("help: no such command: %s", args[0])
	}
	if cmd.Usage != "" {
		env.Out.Print("usage: " + cmd.Usage + "\n")
	}
	if cmd.Desc != "" {
		env.Out.Print(cmd.Desc + "\n")
	}
	if len(cmd.Aliases) > 0 {
		env.Out.Print("aliases: " + strings.Join(cmd.Aliases, ", ") + "\n")
	}
	for _, opt := range cmd.Options {
		env.Out.Printf("  %-6s %s\n", opt.Flag, opt.Desc)
	}
	return nil
}

func cmdEcho(_ context.Context, env *Env, args []string) error {
	if len(args) == 0 {
		env.Out.Print("\n")
		return nil
	}
	env.Out.Print(stripQuotes(strings.Join(args, " ")) + "\n")
	return nil
}

func cmdClear(_ context.Context, env *Env, args []string) error {
	if len(args) != 0 {
		return errors.New("usage: clear")
	}
	if env.clear != nil {
		env.clear()
	}
	return nil
}

func cmdHistory(_ context.Context, env *Env, args []string) error {
	if len(args) != 0 {
		return errors.New("usage: history")
	}
	for i, entry := range env.history.Entries() {
		env.Out.Printf("%5d  %s\n", i+1, entry)
	}
	return nil
}
