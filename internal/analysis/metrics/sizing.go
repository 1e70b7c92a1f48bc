package metrics

import (
	"sort"

	"trading-journal/internal/models"
)

// SymbolSizing holds position-size statistics for one symbol.
type SymbolSizing struct {
	Symbol  string
	Trades  int
	Average float64
	Min     float64
	Max     float64
}

// PositionSizing holds position-value statistics across a trade set,
// where position value is entry price times quantity.
type PositionSizing struct {
	Average  float64
	Min      float64
	Max      float64
	BySymbol []SymbolSizing
}

// Sizing computes position-value statistics overall and per symbol.
// Per-symbol groups are sorted by symbol for stable output.
func Sizing(trades []models.Trade) PositionSizing {
	if len(trades) == 0 {
		return PositionSizing{}
	}

	var result PositionSizing
	var total float64
	result.Min = trades[0].PositionValue()

	perSymbol := make(map[string]*SymbolSizing)
	for _, t := range trades {
		v := t.PositionValue()
		total += v
		if v < result.Min {
			result.Min = v
		}
		if v > result.Max {
			result.Max = v
		}

		ss, ok := perSymbol[t.Symbol]
		if !ok {
			ss = &SymbolSizing{Symbol: t.Symbol, Min: v, Max: v}
			perSymbol[t.Symbol] = ss
		}
		ss.Trades++
		ss.Average += v // running sum, divided below
		if v < ss.Min {
			ss.Min = v
		}
		if v > ss.Max {
			ss.Max = v
		}
	}
	result.Average = total / float64(len(trades))

	result.BySymbol = make([]SymbolSizing, 0, len(perSymbol))
	for _, ss := range perSymbol {
		ss.Average /= float64(ss.Trades)
		result.BySymbol = append(result.BySymbol, *ss)
	}
	sort.Slice(result.BySymbol, func(i, j int) bool {
		return result.BySymbol[i].Symbol < result.BySymbol[j].Symbol
	})
	return result
}
