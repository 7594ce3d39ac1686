// Package sops adapts the external sops binary to the Store interface.
//
// shell-sops never touches ciphertext. Decrypt shells out to
// `sops --decrypt <path>` and Set to `sops --set '<path-expr> <json>' <path>`,
// which rewrites the file in place.
//
// # Key Addressing
//
// Values are addressed at the top level of the document, `["key"]`. Flat
// INI files have no top level, so keys in files with an INI extension are
// addressed inside a fixed section, `["config"]["key"]`.
//
// # Errors
//
// Both operations fail with ErrToolNotFound when the binary cannot be
// resolved on PATH, ErrToolExecutionFailed (carrying stderr) when it exits
// non-zero, and ErrEncoding when its output is not valid UTF-8.
package sops
