package identity

import (
	"strings"
	"unicode"

	"github.com/qrmenu/backend/internal/domain/shared"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxSlugLength = 100

// Slugify derives a URL-safe slug from a display name: accents are stripped,
// letters lowercased and every run of other characters collapsed into a hyphen.
func Slugify(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingHyphen = false
		default:
			pendingHyphen = true
		}
	}

	slug := b.String()
	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-")
	}
	return slug
}

// ValidateSlug checks that a slug only holds lowercase ASCII letters, digits
// and single inner hyphens.
func ValidateSlug(slug string) error {
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Business slug cannot be empty")
	}
	if len(slug) > maxSlugLength {
		return shared.NewDomainError("INVALID_SLUG", "Business slug cannot exceed 100 characters")
	}
	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") || strings.Contains(slug, "--") {
		return shared.NewDomainError("INVALID_SLUG", "Business slug cannot start or end with a hyphen or contain consecutive hyphens")
	}
	for _, r := range slug {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return shared.NewDomainError("INVALID_SLUG", "Business slug can only contain lowercase letters, numbers, and hyphens")
		}
	}
	return nil
}
