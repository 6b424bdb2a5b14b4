// Package order extracts the declared workspace ordering from Hyprland
// configuration text.
//
// Only lines that begin (after leading whitespace) with the literal
// "workspace=" take part. The declaration token is everything before the
// first comma; a leading "name:" marker and all whitespace are stripped to
// produce the canonical identifier. Every other line is ignored.
package order

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/danieljhkim/hyprnav/internal/fsops"
)

// ErrConfigUnavailable indicates a configuration file could not be read.
// Callers treat it as an empty ordering, never as a failure.
var ErrConfigUnavailable = errors.New("config unavailable")

const (
	declPrefix = "workspace="
	namePrefix = "name:"
)

// Canonicalize turns a workspace token into its canonical identifier.
func Canonicalize(token string) string {
	token = strings.TrimLeftFunc(token, unicode.IsSpace)
	token = strings.TrimPrefix(token, namePrefix)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, token)
}

// Extract returns workspace identifiers in first-seen declaration order.
func Extract(text string) []string {
	var ids []string
	seen := make(map[string]struct{})
	for _, line := range strings.Split(text, "\n") {
		id, ok := parseLine(line)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// parseLine returns the canonical identifier declared on line, if any.
func parseLine(line string) (string, bool) {
	line = strings.TrimRight(line, "\r")
	line = strings.TrimLeftFunc(line, unicode.IsSpace)
	if !strings.HasPrefix(line, declPrefix) {
		return "", false
	}
	token := line[len(declPrefix):]
	if i := strings.IndexByte(token, ','); i >= 0 {
		token = token[:i]
	}
	id := Canonicalize(token)
	if id == "" {
		return "", false
	}
	return id, true
}

// Load reads path and extracts its ordering.
// On a read failure it returns an empty list and an error wrapping
// ErrConfigUnavailable.
func Load(fs fsops.FS, path string) ([]string, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigUnavailable, path, err)
	}
	return Extract(string(data)), nil
}

// LoadAll reads each path in turn and merges the orderings, keeping the
// first occurrence of every identifier across files. Unreadable files
// contribute nothing; their errors are joined into the returned error.
func LoadAll(fs fsops.FS, paths []string) ([]string, error) {
	var (
		ids  []string
		errs []error
	)
	seen := make(map[string]struct{})
	for _, path := range paths {
		part, err := Load(fs, path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, id := range part {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids, errors.Join(errs...)
}
