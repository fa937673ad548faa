package newsfeed

import (
	"net/url"
	"sort"

	"finance-tracker/internal/domain"
)

// unknownSource labels records that expose no usable source identity.
const unknownSource = "unknown"

// Schedule orders records by publish date descending, then bounds
// consecutive same-source runs at maxConsecutivePerSource. When the head
// of the remaining queue would extend a run past the bound, the first
// queued record from a different source is pulled forward instead; if
// every remaining record shares the source, the run is allowed to
// continue. The result is always a permutation of the input.
//
// maxConsecutivePerSource < 1 disables scheduling and returns the input
// slice unchanged.
func Schedule(records []*domain.NewsRecord, maxConsecutivePerSource int) []*domain.NewsRecord {
	if maxConsecutivePerSource < 1 || len(records) == 0 {
		return records
	}

	queue := make([]*domain.NewsRecord, len(records))
	copy(queue, records)

	// Date descending, missing dates (0) last. SliceStable keeps the
	// incoming order among equal dates.
	sort.SliceStable(queue, func(i, j int) bool {
		return queue[i].PublishedAt > queue[j].PublishedAt
	})

	out := make([]*domain.NewsRecord, 0, len(queue))
	lastSource := ""
	runCount := 0

	for len(queue) > 0 {
		pick := 0
		src := sourceIdentity(queue[0])

		if src == lastSource && runCount >= maxConsecutivePerSource {
			// Find the first queued record from another source.
			for i := 1; i < len(queue); i++ {
				if sourceIdentity(queue[i]) != lastSource {
					pick = i
					break
				}
			}
		}

		chosen := queue[pick]
		queue = append(queue[:pick], queue[pick+1:]...)
		out = append(out, chosen)

		if s := sourceIdentity(chosen); s == lastSource {
			runCount++
		} else {
			lastSource = s
			runCount = 1
		}
	}

	return out
}

// sourceIdentity resolves the identity used for run accounting: the
// first non-empty of source name, source id and the link host.
func sourceIdentity(r *domain.NewsRecord) string {
	if r.SourceName != "" {
		return r.SourceName
	}
	if r.SourceID != "" {
		return r.SourceID
	}
	if r.Link != "" {
		if u, err := url.Parse(r.Link); err == nil && u.Host != "" {
			return u.Host
		}
	}
	return unknownSource
}
