package normalize

import "strings"

// youtubeEmbedPrefix is the canonical base for film embed URLs. Payloads may
// carry a bare video identifier instead of a full URL; those are rewritten
// before persistence.
const youtubeEmbedPrefix = "https://www.youtube.com/embed/"

// Title folds a film title for identity comparison: surrounding whitespace
// is trimmed, internal runs of whitespace collapse to a single space, and
// the result is lowercased. The stored title is never modified; this form
// exists only to decide whether two titles name the same film.
func Title(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// EmbedURL returns the canonical embed URL for the provided value. Values
// already carrying an https:// scheme pass through untouched; anything else
// is treated as a bare video identifier and prefixed.
func EmbedURL(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "https://") {
		return s
	}
	return youtubeEmbedPrefix + s
}
