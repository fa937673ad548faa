package newsfeed

import (
	"strings"

	"finance-tracker/internal/domain"
)

// Resolve collapses near-duplicate records into one representative per
// canonical identity. Records with neither title nor link are dropped
// before bucketing. Output order is undefined relative to the input;
// Schedule imposes the final order.
func Resolve(records []*domain.NewsRecord, preferredLanguage string) []*domain.NewsRecord {
	if len(records) == 0 {
		return nil
	}

	buckets := make(map[CanonicalKey]*domain.NewsRecord, len(records))
	var order []CanonicalKey // deterministic output across runs

	for _, r := range records {
		if r == nil || !r.HasContent() {
			continue
		}
		key := Normalize(r)
		current, seen := buckets[key]
		if !seen {
			buckets[key] = r
			order = append(order, key)
			continue
		}
		buckets[key] = better(current, r, preferredLanguage)
	}

	out := make([]*domain.NewsRecord, 0, len(order))
	for _, key := range order {
		out = append(out, buckets[key])
	}
	return out
}

// better selects the higher-quality of two duplicate records.
// Precedence: preferred language, then image presence, then longer
// description, then newer publish date. a wins ties, keeping the
// fold stable on first-seen order.
func better(a, b *domain.NewsRecord, preferredLanguage string) *domain.NewsRecord {
	if preferredLanguage != "" {
		aLang := matchesLanguage(a.Language, preferredLanguage)
		bLang := matchesLanguage(b.Language, preferredLanguage)
		if aLang != bLang {
			if aLang {
				return a
			}
			return b
		}
	}

	if (a.ImageURL != "") != (b.ImageURL != "") {
		if a.ImageURL != "" {
			return a
		}
		return b
	}

	if len(a.Description) != len(b.Description) {
		if len(a.Description) > len(b.Description) {
			return a
		}
		return b
	}

	// Missing date (0) sorts as the infinite past.
	if b.PublishedAt > a.PublishedAt {
		return b
	}
	return a
}

// matchesLanguage reports whether a record's language field contains the
// preferred language, case-insensitively. "en-US" matches preferred "en".
func matchesLanguage(lang, preferred string) bool {
	if lang == "" {
		return false
	}
	return strings.Contains(strings.ToLower(lang), strings.ToLower(preferred))
}
