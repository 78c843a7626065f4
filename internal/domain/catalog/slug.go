package catalog

import (
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:_[a-z0-9]+)*$`)

// Slugify derives a catalog slug from a human-readable title. Runs of
// characters outside [a-z0-9] collapse into single underscores.
func Slugify(title string) string {
	lowered := strings.ToLower(strings.TrimSpace(title))

	var b strings.Builder
	lastUnderscore := true
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}

	return strings.Trim(b.String(), "_")
}

// ValidateSlug reports whether the provided slug matches the catalog slug
// shape used by topic filenames.
func ValidateSlug(slug string) error {
	if slug == "" {
		return eris.New("slug is required")
	}
	if !slugPattern.MatchString(slug) {
		return eris.Errorf("slug %s contains invalid characters", slug)
	}
	return nil
}
