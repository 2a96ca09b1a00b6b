// Package diversity reduces a pooled candidate list to a bounded, topically
// balanced shortlist: guaranteed category coverage first, then raw score.
package diversity

import (
	"sort"

	"newsdesk/internal/core"
)

// RequiredCategories are guaranteed one slot each when candidates exist.
var RequiredCategories = []core.TopicCategory{
	core.TopicPolitics,
	core.TopicBusiness,
	core.TopicTechnology,
	core.TopicInternational,
	core.TopicHealth,
	core.TopicClimate,
}

// Select picks up to maxCount candidates: for each required category, the
// single highest-scoring unused candidate of that category (if any), then the
// globally highest-scoring remainder regardless of category. A category absent
// from the input simply contributes nothing.
func Select(candidates []core.Candidate, maxCount int) []core.Candidate {
	if maxCount <= 0 || len(candidates) == 0 {
		return nil
	}

	// Sort a copy by score descending so both passes can scan in order.
	sorted := make([]core.Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ImportanceScore > sorted[j].ImportanceScore
	})

	used := make(map[int]bool, maxCount)
	shortlist := make([]core.Candidate, 0, maxCount)

	for _, category := range RequiredCategories {
		if len(shortlist) >= maxCount {
			break
		}
		for i, c := range sorted {
			if used[i] || c.TopicCategory != category {
				continue
			}
			used[i] = true
			shortlist = append(shortlist, c)
			break
		}
	}

	for i, c := range sorted {
		if len(shortlist) >= maxCount {
			break
		}
		if used[i] {
			continue
		}
		used[i] = true
		shortlist = append(shortlist, c)
	}

	return shortlist
}
