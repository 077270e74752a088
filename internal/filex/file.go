// Package filex contains filesystem helpers: data directory creation and the
// two resume input adapters (a typed path and a path pasted by a terminal
// drag-and-drop).
package filex

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

var ErrEmptyPath = errors.New("empty path")

// EnsureDir creates dir (and parents) with owner-only permissions and
// returns its absolute form.
func EnsureDir(dir string) (string, error) {
	abs, err := ExpandPath(dir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(abs, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}
	return abs, nil
}

// ExpandPath resolves a leading "~" to the home directory and makes p
// absolute.
func ExpandPath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", ErrEmptyPath
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("home dir: %w", err)
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", p, err)
	}
	return abs, nil
}

// BrowsePath resolves a path typed by the user.
func BrowsePath(input string) (string, error) {
	return ExpandPath(input)
}

// DropPath resolves a path pasted by a terminal drag-and-drop. Terminals
// paste either a file:// URI, a quoted path, or a path with
// backslash-escaped specials; all three are undone here.
func DropPath(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", ErrEmptyPath
	}

	switch {
	case strings.HasPrefix(s, "file://"):
		u, err := url.Parse(s)
		if err != nil {
			return "", fmt.Errorf("parse %q: %w", s, err)
		}
		if u.Host != "" && u.Host != "localhost" {
			return "", fmt.Errorf("remote file %q not supported", s)
		}
		s = u.Path
	case len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'':
		s = strings.ReplaceAll(s[1:len(s)-1], `'\''`, `'`)
	case len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"':
		s = unescape(s[1 : len(s)-1])
	case runtime.GOOS != "windows":
		s = unescape(s)
	}

	return ExpandPath(s)
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for _, r := range s {
		if !escaped && r == '\\' {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}

// OpenRegular opens path for reading and rejects directories and other
// non-regular files.
func OpenRegular(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if !fi.Mode().IsRegular() {
		_ = f.Close()
		return nil, fmt.Errorf("%s is not a regular file", path)
	}
	return f, nil
}
