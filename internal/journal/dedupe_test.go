package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trading-journal/internal/models"
)

func trade(id string, pnl float64) models.Trade {
	return models.Trade{ID: id, Date: "2024-03-15", Symbol: "AAPL", PnL: pnl}
}

func TestDedupeSkipsExistingIDs(t *testing.T) {
	existing := []models.Trade{trade("a", 10), trade("b", -5)}
	incoming := []models.Trade{trade("b", -5), trade("c", 20)}

	result := Dedupe(existing, incoming)

	assert.Equal(t, 1, result.DuplicateCount)
	assert.Len(t, result.ToAdd, 1)
	assert.Equal(t, "c", result.ToAdd[0].ID)
}

func TestDedupeMatchesOnIDOnly(t *testing.T) {
	// Same id with different fields is still a duplicate.
	existing := []models.Trade{trade("a", 10)}
	incoming := []models.Trade{trade("a", 999)}

	result := Dedupe(existing, incoming)

	assert.Empty(t, result.ToAdd)
	assert.Equal(t, 1, result.DuplicateCount)
}

func TestDedupeAgainstSelfAddsNothing(t *testing.T) {
	existing := []models.Trade{trade("a", 10), trade("b", -5), trade("c", 3)}

	result := Dedupe(existing, existing)

	assert.Empty(t, result.ToAdd)
	assert.Equal(t, len(existing), result.DuplicateCount)
}

func TestDedupeEmptyExisting(t *testing.T) {
	incoming := []models.Trade{trade("a", 10), trade("b", -5)}

	result := Dedupe(nil, incoming)

	assert.Len(t, result.ToAdd, 2)
	assert.Zero(t, result.DuplicateCount)
}

func TestDedupeDoesNotMutateInputs(t *testing.T) {
	existing := []models.Trade{trade("a", 10)}
	incoming := []models.Trade{trade("a", 10), trade("b", 1)}

	_ = Dedupe(existing, incoming)

	assert.Len(t, existing, 1)
	assert.Len(t, incoming, 2)
	assert.Equal(t, "a", incoming[0].ID)
}
