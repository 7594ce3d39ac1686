package main

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/shell-sops/cmd"
	"github.com/PolarWolf314/shell-sops/internal/ui"
)

func main() {
	if err := cmd.ShellSopsCmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, ui.EnsureNewline(ui.Error.Sprint("Error: ")+err.Error()))
		os.Exit(1)
	}
}
