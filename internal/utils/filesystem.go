package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	serrors "github.com/PolarWolf314/shell-sops/internal/errors"
)

// ResolveFiles turns user-provided paths and globs into the list of files to
// process, in argument order and without duplicates.
//
// Every literal path must exist and every glob must match at least one
// regular file; the first violation aborts with ErrFileNotFound so nothing
// is processed.
func ResolveFiles(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, serrors.ErrNoFilesFound
	}

	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		resolved, err := resolvePattern(pattern)
		if err != nil {
			return nil, err
		}

		for _, f := range resolved {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	return files, nil
}

func resolvePattern(pattern string) ([]string, error) {
	// An existing file wins over glob syntax, so secrets[prod].yaml is literal.
	info, err := os.Stat(pattern)
	if err == nil && info.Mode().IsRegular() {
		return []string{pattern}, nil
	}

	if strings.ContainsAny(pattern, "*?[{") && err != nil {
		return expandGlob(pattern)
	}

	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", serrors.ErrFileNotFound, pattern)
	}
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", pattern, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", serrors.ErrFileNotFound, pattern)
	}
	return nil, fmt.Errorf("%w: %s is not a regular file", serrors.ErrFileNotFound, pattern)
}

func expandGlob(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	var files []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, m)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files match %s", serrors.ErrFileNotFound, pattern)
	}

	return files, nil
}
