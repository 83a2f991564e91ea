package router

import (
	"errors"
	"strings"
)

// Path canonicalization errors.
var (
	ErrBackslashInPath = errors.New("path contains backslash")
	ErrNullByteInPath  = errors.New("path contains null byte")
	ErrPathEscapesRoot = errors.New("path escapes root via ..")
)

// CanonicalPath normalizes a site-relative path:
//   - ensures a leading slash
//   - collapses repeated slashes (/a//b -> /a/b)
//   - removes "." segments
//   - resolves ".." segments
//   - strips the trailing slash (except for root "/")
//
// Inputs containing a backslash, a NUL byte, or ".." escaping the root
// are rejected. A query string is preserved untouched.
func CanonicalPath(input string) (string, error) {
	if input == "" {
		return "/", nil
	}

	path, query, hasQuery := strings.Cut(input, "?")

	// SECURITY: reject backslash and NUL before any normalization.
	if strings.Contains(path, "\\") {
		return "", ErrBackslashInPath
	}
	if strings.Contains(path, "\x00") || strings.Contains(strings.ToUpper(path), "%00") {
		return "", ErrNullByteInPath
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	segments := strings.Split(path, "/")
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(out) == 0 {
				return "", ErrPathEscapesRoot
			}
			out = out[:len(out)-1]
		default:
			out = append(out, seg)
		}
	}

	canonical := "/" + strings.Join(out, "/")
	if hasQuery {
		canonical += "?" + query
	}
	return canonical, nil
}
