package fetch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileFetcher serves URLs from a local document root. URLs are treated as
// slash paths relative to the root; escaping the root is rejected.
type FileFetcher struct {
	root string
}

func NewFileFetcher(root string) (*FileFetcher, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("document root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	return &FileFetcher{root: abs}, nil
}

func (f *FileFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	rel := filepath.FromSlash(strings.TrimPrefix(url, "/"))
	path := filepath.Join(f.root, rel)
	if path != f.root && !strings.HasPrefix(path, f.root+string(filepath.Separator)) {
		return nil, fmt.Errorf("fetch %s: outside document root", url)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	return body, nil
}
