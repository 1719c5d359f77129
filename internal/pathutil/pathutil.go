package pathutil

import "strings"

// Dir derives the base path of a URL: everything up to and including the
// last path separator. A URL that already ends in a separator is returned
// unchanged, and a bare filename has no directory component at all.
func Dir(url string) string {
	if url == "" {
		return ""
	}
	if strings.HasSuffix(url, "/") || strings.HasSuffix(url, "\\") {
		return url
	}
	if i := strings.LastIndex(url, "/"); i >= 0 {
		return url[:i+1]
	}
	if i := strings.LastIndex(url, "\\"); i >= 0 {
		return url[:i+1]
	}
	return ""
}

// Resolve joins a reference found inside a document with the document's
// base path. References that already carry a scheme or are root-absolute
// pass through untouched.
func Resolve(base, ref string) string {
	if ref == "" {
		return base
	}
	if strings.Contains(ref, "://") || strings.HasPrefix(ref, "/") {
		return ref
	}
	return base + ref
}
