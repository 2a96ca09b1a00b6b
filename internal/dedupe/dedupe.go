// Package dedupe collapses near-identical candidates pooled across providers.
package dedupe

import (
	"strings"

	"newsdesk/internal/core"
)

const maxKeyLength = 100

// Key returns the dedup key for a candidate: the lowercased, truncated URL,
// falling back to title, then description.
func Key(c core.Candidate) string {
	raw := c.URL
	if raw == "" {
		raw = c.Title
	}
	if raw == "" {
		raw = c.Description
	}
	key := strings.ToLower(raw)
	if len(key) > maxKeyLength {
		key = key[:maxKeyLength]
	}
	return key
}

// Dedupe keeps the first occurrence of each key and drops the rest, preserving
// input order. O(n) with a seen-set.
func Dedupe(candidates []core.Candidate) []core.Candidate {
	seen := make(map[string]bool, len(candidates))
	out := make([]core.Candidate, 0, len(candidates))
	for _, c := range candidates {
		key := Key(c)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}
