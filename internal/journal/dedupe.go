package journal

import "trading-journal/internal/models"

// DedupeResult partitions an incoming import against an existing
// collection. The decision to append ToAdd is the caller's, typically
// after showing the counts to the user.
type DedupeResult struct {
	ToAdd          []models.Trade
	DuplicateCount int
}

// Dedupe reports which incoming trades are new. A trade is a duplicate
// iff its id already exists in the collection; content is not compared.
// Neither input is mutated.
func Dedupe(existing, incoming []models.Trade) DedupeResult {
	seen := make(map[string]struct{}, len(existing))
	for _, t := range existing {
		seen[t.ID] = struct{}{}
	}

	result := DedupeResult{ToAdd: make([]models.Trade, 0, len(incoming))}
	for _, t := range incoming {
		if _, dup := seen[t.ID]; dup {
			result.DuplicateCount++
			continue
		}
		result.ToAdd = append(result.ToAdd, t)
	}
	return result
}
