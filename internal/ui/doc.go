// Package ui provides semantic text formatting for CLI output.
//
// Formatters render with color when the terminal supports it. When NO_COLOR
// is set or colors are unavailable, text decorations are used instead so
// reports stay readable in CI logs:
//
//	ui.Code.Sprint("shell-sops sync")  // `shell-sops sync`
//	ui.Key.Sprint("db_password")       // 'db_password'
//	ui.Muted.Sprint("unchanged")       // (unchanged)
//
// Path, Flag, Success, Error, Warning and Info carry no decoration.
package ui
