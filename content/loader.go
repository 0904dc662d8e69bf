package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LoadDir walks dir, parses every markdown file, and upserts the results
// into the store. It returns the number of posts loaded. A file that fails
// to open or parse is skipped and the walk continues; the skipped files'
// errors are joined into the returned error so the caller can report a
// partial load.
func LoadDir(s *Store, dir string) (int, error) {
	count := 0
	var skipped []error
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isMarkdown(path) {
			return nil
		}
		post, err := parseFile(path, slugFromPath(dir, path))
		if err != nil {
			skipped = append(skipped, err)
			return nil
		}
		if err := s.SavePost(post); err != nil {
			return fmt.Errorf("content: save %s: %w", post.Slug, err)
		}
		count++
		return nil
	})
	if walkErr != nil {
		skipped = append(skipped, walkErr)
	}
	return count, errors.Join(skipped...)
}

func parseFile(path, slug string) (Post, error) {
	f, err := os.Open(path)
	if err != nil {
		return Post{}, err
	}
	defer f.Close()

	post, err := Parse(f, slug)
	if err != nil {
		return Post{}, fmt.Errorf("content: %s: %w", path, err)
	}
	return post, nil
}

func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".mdx", ".markdown":
		return true
	}
	return false
}

// slugFromPath derives a slug from the file path relative to the content
// root: "serie-react/2024-01-01-hooks.mdx" becomes "hooks" when the name
// carries a date prefix, otherwise the bare file name.
func slugFromPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	name := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
	// strip a leading YYYY-MM-DD- date prefix
	if len(name) > 11 && name[4] == '-' && name[7] == '-' && name[10] == '-' {
		if isDigits(name[:4]) && isDigits(name[5:7]) && isDigits(name[8:10]) {
			name = name[11:]
		}
	}
	return name
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
