// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package suggest finds the closest known identifier to a mistyped one.
//
// It backs the "did you mean" hints of unresolved references and of
// not-found API responses.
package suggest

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Closest returns the candidate nearest to target by edit distance.
//
// Comparison is case-insensitive. Candidates further away than the
// length-scaled limit are ignored; ok is false when nothing qualifies.
// Ties keep the earliest candidate.
func Closest(target string, candidates []string) (best string, ok bool) {
	if target == "" {
		return "", false
	}

	needle := strings.ToLower(target)
	bestDist := -1

	for _, cand := range candidates {
		dist := levenshtein.ComputeDistance(needle, strings.ToLower(cand))
		if dist > Limit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = cand, dist
		}
	}

	return best, bestDist >= 0
}

// Limit is the largest edit distance accepted for a candidate of the given
// length.
func Limit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	case length <= 16:
		return 3
	default:
		return length / 5
	}
}
