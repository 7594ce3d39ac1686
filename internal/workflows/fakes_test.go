package workflows

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	serrors "github.com/PolarWolf314/shell-sops/internal/errors"
)

type setCall struct {
	Path  string
	Key   string
	Value string
}

// fakeStore keeps plaintext in memory and applies Set by rewriting the key's line.
type fakeStore struct {
	mu          sync.Mutex
	files       map[string]string
	decryptErrs map[string]error
	setErr      error
	sets        []setCall
	decrypts    int
}

func newFakeStore(files map[string]string) *fakeStore {
	return &fakeStore{files: files, decryptErrs: map[string]error{}}
}

func (s *fakeStore) Decrypt(_ context.Context, path string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decrypts++
	if err, ok := s.decryptErrs[path]; ok {
		return "", err
	}
	content, ok := s.files[path]
	if !ok {
		return "", fmt.Errorf("%w: no such file %s", serrors.ErrToolExecutionFailed, path)
	}
	return content, nil
}

func (s *fakeStore) Set(_ context.Context, path, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets = append(s.sets, setCall{Path: path, Key: key, Value: value})
	if s.setErr != nil {
		return s.setErr
	}
	s.files[path] = replaceValue(s.files[path], key, value)
	return nil
}

// replaceValue rewrites the first line holding key, or appends one.
func replaceValue(content, key, value string) string {
	line := regexp.MustCompile(`(?m)^([ \t]*` + regexp.QuoteMeta(key) + `[ \t]*[:=][ \t]*).*$`)
	loc := line.FindStringSubmatchIndex(content)
	if loc == nil {
		return content + key + ": " + value + "\n"
	}
	return content[:loc[3]] + value + content[loc[1]:]
}

// fakeRunner returns canned output per command.
type fakeRunner struct {
	outputs map[string]string
	errs    map[string]error
	calls   []string
}

func (r *fakeRunner) Run(_ context.Context, command string) (string, error) {
	r.calls = append(r.calls, command)
	if err, ok := r.errs[command]; ok {
		return "", err
	}
	out, ok := r.outputs[command]
	if !ok {
		return "", fmt.Errorf("%w: %q: unexpected command", serrors.ErrCommandExecutionFailed, command)
	}
	return out, nil
}
