package sops

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	serrors "github.com/PolarWolf314/shell-sops/internal/errors"
	"github.com/PolarWolf314/shell-sops/internal/executor"
)

const (
	DefaultBinary     = "sops"
	DefaultINISection = "config"
)

// DefaultINIExtensions lists the extensions treated as flat INI files.
var DefaultINIExtensions = []string{".ini"}

// Store decrypts files and writes single keys back through the encryption tool.
type Store interface {
	Decrypt(ctx context.Context, path string) (string, error)
	Set(ctx context.Context, path, key, value string) error
}

// Client implements Store by invoking the sops binary.
type Client struct {
	// Binary is the sops executable name or path.
	Binary string

	// INISection is the section INI keys are written under.
	INISection string

	// INIExtensions are matched case-insensitively against the file extension.
	INIExtensions []string

	// LookPath resolves Binary. Defaults to exec.LookPath.
	LookPath func(file string) (string, error)
}

// NewClient returns a Client with the default binary and INI settings.
func NewClient() *Client {
	return &Client{
		Binary:        DefaultBinary,
		INISection:    DefaultINISection,
		INIExtensions: DefaultINIExtensions,
	}
}

// Decrypt returns the plaintext of the encrypted file at path.
func (c *Client) Decrypt(ctx context.Context, path string) (string, error) {
	return c.run(ctx, "--decrypt", path)
}

// Set replaces the value of key in the encrypted file at path.
func (c *Client) Set(ctx context.Context, path, key, value string) error {
	expr := c.SetPath(path, key) + " " + FormatValue(value)
	_, err := c.run(ctx, "--set", expr, path)
	return err
}

// SetPath returns the sops tree path addressing key in the given file.
func (c *Client) SetPath(path, key string) string {
	if c.isINI(path) {
		section := c.INISection
		if section == "" {
			section = DefaultINISection
		}
		return "[" + quote(section) + "][" + quote(key) + "]"
	}
	return "[" + quote(key) + "]"
}

func (c *Client) isINI(path string) bool {
	extensions := c.INIExtensions
	if extensions == nil {
		extensions = DefaultINIExtensions
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if ext != "" && strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	binary := c.Binary
	if binary == "" {
		binary = DefaultBinary
	}
	lookPath := c.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	resolved, err := lookPath(binary)
	if err != nil {
		return "", fmt.Errorf("%w: %s", serrors.ErrToolNotFound, binary)
	}

	result, err := executor.New(resolved, args...).Execute(ctx)
	if err != nil {
		// Only a process that never started means the tool is missing.
		// Killed processes also report exit code -1.
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", fmt.Errorf("%w: %v", serrors.ErrToolNotFound, err)
		}
		stderr := strings.TrimSpace(result.Stderr)
		if stderr == "" {
			stderr = exitErr.Error()
		}
		return "", fmt.Errorf("%w: %s", serrors.ErrToolExecutionFailed, stderr)
	}

	if !utf8.Valid(result.Stdout) {
		return "", serrors.ErrEncoding
	}
	return string(result.Stdout), nil
}

// FormatValue renders value as a JSON literal for `sops --set`.
// Valid JSON keeps its type; anything else becomes a JSON string.
func FormatValue(value string) string {
	if json.Valid([]byte(value)) {
		dec := json.NewDecoder(strings.NewReader(value))
		dec.UseNumber()
		var parsed any
		if err := dec.Decode(&parsed); err == nil {
			return encode(parsed)
		}
	}
	return quote(value)
}

// RenderedValue returns how sops prints a value written with FormatValue
// when the file is decrypted again. JSON strings lose their quotes and JSON
// numbers come back in canonical form, so "hi" reads back as hi and 1e3 as
// 1000. Other values are returned unchanged.
func RenderedValue(value string) string {
	if !json.Valid([]byte(value)) {
		return value
	}
	dec := json.NewDecoder(strings.NewReader(value))
	dec.UseNumber()
	var parsed any
	if err := dec.Decode(&parsed); err != nil {
		return value
	}

	switch v := parsed.(type) {
	case string:
		return v
	case json.Number:
		if _, err := strconv.ParseInt(v.String(), 10, 64); err == nil {
			return v.String()
		}
		if f, err := v.Float64(); err == nil {
			return strconv.FormatFloat(f, 'g', -1, 64)
		}
	}
	return value
}

func quote(s string) string {
	return encode(s)
}

func encode(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return `""`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
