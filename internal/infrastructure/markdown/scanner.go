package markdown

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// TopicFile represents one discovered topic document. The numeric prefix is
// parsed into an integer so ordering never falls back to lexicographic
// filename sorting.
type TopicFile struct {
	Prefix int
	Slug   string
	Title  string
	Body   string
	Path   string
}

var topicFilePattern = regexp.MustCompile(`^(\d{2,})_([a-z0-9]+(?:_[a-z0-9]+)*)\.md$`)

// ScanDir discovers numeric-prefixed topic documents in the provided
// directory and returns them ordered by prefix. Files that do not match the
// <NN>_<slug>.md convention are ignored.
func ScanDir(dir string) ([]TopicFile, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, eris.New("content directory is required")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "reading content directory: %s", dir)
	}

	files := make([]TopicFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		match := topicFilePattern.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}

		prefix, err := strconv.Atoi(match[1])
		if err != nil {
			return nil, eris.Wrapf(err, "parsing numeric prefix of %s", entry.Name())
		}

		path := filepath.Join(dir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrapf(err, "reading topic file: %s", path)
		}

		title, body := splitDocument(string(raw))
		if title == "" {
			title = titleFromSlug(match[2])
		}

		files = append(files, TopicFile{
			Prefix: prefix,
			Slug:   match[2],
			Title:  title,
			Body:   body,
			Path:   path,
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Prefix < files[j].Prefix
	})

	return files, nil
}

// splitDocument extracts the leading level-one heading as the title; the
// remainder becomes the body.
func splitDocument(raw string) (string, string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ""
	}

	lines := strings.SplitN(trimmed, "\n", 2)
	first := strings.TrimSpace(lines[0])

	if heading, ok := strings.CutPrefix(first, "# "); ok {
		body := ""
		if len(lines) > 1 {
			body = strings.TrimSpace(lines[1])
		}
		return strings.TrimSpace(heading), body
	}

	return "", trimmed
}

func titleFromSlug(slug string) string {
	words := strings.Split(slug, "_")
	for idx, word := range words {
		if word == "" {
			continue
		}
		words[idx] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
