// Package newsfeed implements the news aggregation core: canonical
// identity derivation, deduplication and source-diversity scheduling.
// All functions are pure; records are held in memory for one pass only.
package newsfeed

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"finance-tracker/internal/domain"
)

// CanonicalKey is the derived deduplication identity of a NewsRecord.
// Two records with equal keys are duplicates of the same story.
type CanonicalKey string

// Tracking query parameters stripped during URL normalization.
var trackingParams = map[string]struct{}{
	"utm_source":   {},
	"utm_medium":   {},
	"utm_campaign": {},
	"utm_term":     {},
	"utm_content":  {},
	"gclid":        {},
	"fbclid":       {},
	"mc_cid":       {},
	"mc_eid":       {},
}

// maxSignatureTokens bounds the title signature length.
const maxSignatureTokens = 12

// Normalize derives the canonical key for a record.
// Precedence: normalized URL, then title signature, then the
// source-provided id, then a fresh unique token so the record is never
// merged with anything else.
func Normalize(r *domain.NewsRecord) CanonicalKey {
	if u := NormalizeURL(r.Link); u != "" {
		return CanonicalKey(u)
	}
	if sig := TitleSignature(r.Title); sig != "" {
		return CanonicalKey(sig)
	}
	if r.ID != "" {
		return CanonicalKey(r.ID)
	}
	return CanonicalKey(uuid.NewString())
}

// NormalizeURL canonicalizes an absolute URL for identity comparison:
// scheme and host are lowercased, tracking and empty-valued query
// parameters are removed (the whole query is dropped when nothing
// remains) and one trailing slash is stripped from non-root paths.
// Returns "" for relative or unparseable input.
func NormalizeURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	q := u.Query()
	for key, vals := range q {
		if _, tracked := trackingParams[strings.ToLower(key)]; tracked {
			q.Del(key)
			continue
		}
		empty := true
		for _, v := range vals {
			if v != "" {
				empty = false
				break
			}
		}
		if empty {
			q.Del(key)
		}
	}
	u.RawQuery = q.Encode()

	if len(u.Path) > 1 && strings.HasSuffix(u.Path, "/") {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	u.Fragment = ""
	return u.String()
}

// foldDiacritics strips combining marks after NFD decomposition,
// mapping e.g. "é" to "e".
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// TitleSignature reduces a title to a comparison signature: lowercased,
// diacritics folded, punctuation dropped, whitespace collapsed, and
// truncated to the first maxSignatureTokens tokens.
func TitleSignature(title string) string {
	if title == "" {
		return ""
	}

	folded, _, err := transform.String(foldDiacritics, strings.ToLower(title))
	if err != nil {
		folded = strings.ToLower(title)
	}

	var sb strings.Builder
	sb.Grow(len(folded))
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
		case unicode.IsSpace(r):
			sb.WriteByte(' ')
		}
	}

	tokens := strings.Fields(sb.String())
	if len(tokens) > maxSignatureTokens {
		tokens = tokens[:maxSignatureTokens]
	}
	return strings.Join(tokens, " ")
}
