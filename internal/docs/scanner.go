package docs

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/korrektly/korrektly-go/internal/gitignore"
)

// dependencyDir is never descended into, ignore file or not.
const dependencyDir = "node_modules"

// Scanner discovers markdown and MDX files under a docs root.
type Scanner struct {
	Root    string
	Matcher *gitignore.Matcher
	Logger  *slog.Logger
}

// Discover walks the root and returns the slash-separated relative paths of
// every markdown/MDX file, in walk order. Unreadable subdirectories are
// logged and contribute no files; an unreadable root is fatal.
func (s *Scanner) Discover() ([]string, error) {
	var files []string

	err := filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == s.Root {
				return err
			}
			s.Logger.Warn("skipping unreadable directory", "path", path, "error", err)
			return nil
		}

		rel, relErr := filepath.Rel(s.Root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if d.Name() == dependencyDir || s.ignored(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if s.ignored(rel) {
			return nil
		}
		switch strings.ToLower(filepath.Ext(rel)) {
		case ".md", ".mdx":
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (s *Scanner) ignored(rel string) bool {
	return s.Matcher != nil && s.Matcher.Ignored(rel)
}
