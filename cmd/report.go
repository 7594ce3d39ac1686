package cmd

import (
	"fmt"
	"io"

	"github.com/PolarWolf314/shell-sops/internal/ui"
	"github.com/PolarWolf314/shell-sops/internal/workflows"
)

// printReport writes a per-file summary followed by a one-line total.
// Files with nothing to report are listed only when showAll is set.
func printReport(w io.Writer, result *workflows.RunResult, showAll bool) {
	for _, f := range result.Files {
		printFileReport(w, result, f, showAll)
	}

	fmt.Fprintln(w, summaryLine(result))
}

func printFileReport(w io.Writer, result *workflows.RunResult, f workflows.FileReport, showAll bool) {
	if f.Err != nil {
		fmt.Fprintf(w, "%s %s\n", ui.Error.Sprint("✗"), ui.Path.Sprint(f.Path))
		fmt.Fprintf(w, "    %s\n", f.Err)
		return
	}

	var lines []string
	for _, r := range f.Results {
		switch {
		case r.Err != nil:
			lines = append(lines, fmt.Sprintf("%s %s %s: %v", ui.Error.Sprint("✗"), ui.Key.Sprint(r.Key), ui.Code.Sprint(r.Command), r.Err))
		case r.Updated:
			lines = append(lines, fmt.Sprintf("%s %s updated", ui.Success.Sprint("✓"), ui.Key.Sprint(r.Key)))
		case r.Changed && result.DryRun:
			lines = append(lines, fmt.Sprintf("%s %s would be updated", ui.Warning.Sprint("~"), ui.Key.Sprint(r.Key)))
		case r.Changed && !r.Found:
			lines = append(lines, fmt.Sprintf("%s %s is missing", ui.Warning.Sprint("~"), ui.Key.Sprint(r.Key)))
		case r.Changed:
			lines = append(lines, fmt.Sprintf("%s %s is out of date", ui.Warning.Sprint("~"), ui.Key.Sprint(r.Key)))
		case showAll:
			lines = append(lines, fmt.Sprintf("%s %s %s", ui.Success.Sprint("="), ui.Key.Sprint(r.Key), ui.Muted.Sprint("up to date")))
		}
	}

	if len(lines) == 0 {
		if showAll {
			fmt.Fprintf(w, "%s %s %s\n", ui.Success.Sprint("✓"), ui.Path.Sprint(f.Path), ui.Muted.Sprintf("%d directive(s)", len(f.Results)))
		}
		return
	}

	fmt.Fprintln(w, ui.Path.Sprint(f.Path))
	for _, line := range lines {
		fmt.Fprintf(w, "    %s\n", line)
	}
}

func summaryLine(result *workflows.RunResult) string {
	files := len(result.Files)
	failures := result.FailureCount()
	failed := ""
	if failures > 0 {
		failed = fmt.Sprintf(", %d failure(s)", failures)
	}

	switch {
	case result.Mode == workflows.ModeCheck:
		drift := result.DriftCount()
		if drift == 0 && failures == 0 {
			return fmt.Sprintf("%s All keys up to date in %d file(s)", ui.Success.Sprint("✓"), files)
		}
		return fmt.Sprintf("%s %d key(s) out of date in %d file(s)%s", ui.Error.Sprint("✗"), drift, files, failed)
	case result.DryRun:
		return fmt.Sprintf("%s Would update %d key(s) in %d file(s)%s. Run without %s to write them.",
			ui.Warning.Sprint("[dry-run]"), result.DriftCount(), files, failed, ui.Flag.Sprint("--dry-run"))
	case failures > 0:
		return fmt.Sprintf("%s Updated %d key(s) in %d file(s)%s", ui.Error.Sprint("✗"), result.UpdateCount(), files, failed)
	default:
		return fmt.Sprintf("%s Updated %d key(s) in %d file(s)", ui.Success.Sprint("✓"), result.UpdateCount(), files)
	}
}
