// termlab hosts the simulated training shell in a real terminal: a
// bubbletea line editor in front of the shell core, scenarios loaded from
// TOML files.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"termlab/internal/buildinfo"
)

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(buildinfo.Short()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
