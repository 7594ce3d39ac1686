package cmd

import (
	"os"
	"time"

	"github.com/briandowns/spinner"

	"github.com/PolarWolf314/shell-sops/internal/utils"
)

// startSpinner starts a spinner on stderr unless verbose or debug output is
// enabled or stderr is not a terminal. The returned function stops it and
// must be called before printing results.
func startSpinner(message string) func() {
	if verbose || debug || !utils.IsTerminal(os.Stderr) {
		Logger.Debugf("Spinner disabled: %s", message)
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message
	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}
	s.Start()

	return s.Stop
}
