package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"termlab/scenario"
	"termlab/shell"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
	Prefix:          "termlab",
})

func newRootCmd() *cobra.Command {
	var watch bool

	root := &cobra.Command{
		Use:   "termlab [scenario.toml]",
		Short: "A simulated training terminal",
		Long: `termlab opens a terminal window backed entirely by a simulated
file system. Commands, completion and history behave like a small
POSIX shell, but nothing ever touches the host machine.

Without arguments it runs the built-in demo scenario.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runTerminal(path, watch)
		},
	}
	root.Flags().BoolVar(&watch, "watch", false, "reload the scenario file when it changes")
	root.AddCommand(newCheckCmd(), newCommandsCmd())
	return root
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <scenario.toml>",
		Short: "Validate a scenario file without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			sc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}
			if _, _, err := sc.Build(); err != nil {
				return err
			}
			enabled := "all"
			if len(sc.Commands) > 0 {
				enabled = fmt.Sprintf("%d", len(sc.Commands))
			}
			logger.Info("scenario ok",
				"file", args[0],
				"user", sc.Session.User+"@"+sc.Session.Host,
				"files", len(sc.Files),
				"commands", enabled)
			return nil
		},
	}
}

func newCommandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the built-in command catalog",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			for _, info := range shell.Catalog() {
				name := info.Name
				if len(info.Aliases) > 0 {
					name += " (" + strings.Join(info.Aliases, ", ") + ")"
				}
				fmt.Fprintf(out, "%-16s %-44s %s\n", name, info.Usage, info.Desc)
			}
		},
	}
}

func runTerminal(path string, watch bool) error {
	sc := scenario.Default()
	if path != "" {
		loaded, err := scenario.Load(path)
		if err != nil {
			return err
		}
		sc = loaded
	} else if watch {
		return errors.New("--watch needs a scenario file to watch")
	}

	m, err := newModel(sc, path)
	if err != nil {
		return err
	}

	prog := tea.NewProgram(m, tea.WithAltScreen())
	if watch {
		stop, err := watchScenario(path, prog)
		if err != nil {
			logger.Warn("scenario watch disabled", "err", err)
		} else {
			defer stop()
		}
	}

	_, err = prog.Run()
	return err
}
