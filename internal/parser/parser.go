package parser

import (
	"regexp"
	"strings"
)

var (
	directiveRegex = regexp.MustCompile(`^#\s*shell:\s*(.+)$`)
	keyRegex       = regexp.MustCompile(`^([^:=\s]+)\s*[:=]`)
)

// CommandMapping binds a shell command to the key it keeps up to date.
type CommandMapping struct {
	Key     string
	Command string

	// Line is the 1-based line number of the directive.
	Line int
}

// ParseCommands returns one mapping per directive that has a non-empty
// command and a key-bearing line after it, in the order the directives appear.
// Duplicate keys are kept.
func ParseCommands(content string) []CommandMapping {
	lines := strings.Split(content, "\n")
	var mappings []CommandMapping

	for i, line := range lines {
		captures := directiveRegex.FindStringSubmatch(strings.TrimSpace(line))
		if captures == nil {
			continue
		}

		command := strings.TrimSpace(captures[1])
		if command == "" {
			continue
		}

		key, ok := findNextKey(lines, i+1)
		if !ok {
			continue
		}

		mappings = append(mappings, CommandMapping{
			Key:     key,
			Command: command,
			Line:    i + 1,
		})
	}

	return mappings
}

func findNextKey(lines []string, start int) (string, bool) {
	for _, line := range lines[start:] {
		if key, _, ok := splitKeyLine(line); ok {
			return key, true
		}
	}
	return "", false
}

// splitKeyLine returns the key and the raw text after its separator.
// Blank lines and comments never match.
func splitKeyLine(line string) (string, string, bool) {
	stripped := strings.TrimSpace(line)
	if stripped == "" || strings.HasPrefix(stripped, "#") {
		return "", "", false
	}

	loc := keyRegex.FindStringSubmatchIndex(stripped)
	if loc == nil {
		return "", "", false
	}

	return stripped[loc[2]:loc[3]], stripped[loc[1]:], true
}

// LookupValue returns the value stored on the first key-bearing line for key.
// Surrounding whitespace and one pair of matching quotes are removed.
func LookupValue(content, key string) (string, bool) {
	for _, line := range strings.Split(content, "\n") {
		k, rest, ok := splitKeyLine(line)
		if !ok || k != key {
			continue
		}
		return unquote(strings.TrimSpace(rest)), true
	}
	return "", false
}

func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if (first == '"' || first == '\'') && first == last {
		return value[1 : len(value)-1]
	}
	return value
}
