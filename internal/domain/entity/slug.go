package entity

import (
	"regexp"
	"strings"

	"velora/pkg/errors"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// NormalizeSlug lowercases and trims a slug and rejects anything that is
// not URL-safe kebab-case.
func NormalizeSlug(slug string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(slug))
	if !slugPattern.MatchString(normalized) {
		return "", errors.NewDomain("SLUG_INVALID", "slug must contain only lowercase letters, digits and hyphens")
	}
	return normalized, nil
}
