package validation

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// MaxSlugLength matches the slug columns.
const MaxSlugLength = 255

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

const maxSlugAttempts = 5

// Slugify turns free text into a lowercase hyphenated slug. Text with no
// usable characters falls back to fallback.
func Slugify(text, fallback string) string {
	s := slug.Make(text)
	if s == "" {
		s = slug.Make(fallback)
	}
	if s == "" {
		s = "item"
	}
	// leave room for the uniqueness suffix
	if limit := MaxSlugLength - 9; len(s) > limit {
		s = strings.Trim(s[:limit], "-")
	}
	return s
}

// ValidateSlug checks an explicitly supplied slug.
func ValidateSlug(s string) error {
	if len(s) == 0 || len(s) > MaxSlugLength {
		return fmt.Errorf("slug must be 1-%d characters", MaxSlugLength)
	}
	if !slugRegex.MatchString(s) {
		return fmt.Errorf("slug may only contain lowercase letters, numbers, and single hyphens")
	}
	return nil
}

// SlugExistsFunc reports whether a slug is already taken.
type SlugExistsFunc func(ctx context.Context, slug string) (bool, error)

// UniqueSlug returns base if it is free, otherwise base with a short random
// suffix. The unique index on the column stays the final arbiter.
func UniqueSlug(ctx context.Context, base string, exists SlugExistsFunc) (string, error) {
	candidate := base
	for i := 0; i < maxSlugAttempts; i++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + uuid.NewString()[:8]
	}
	return "", fmt.Errorf("could not find a free slug for %q", base)
}
