// Package breakdown groups trades by dimension and computes per-group
// statistics plus the derived time series used for charting. All
// functions are pure.
package breakdown

import (
	"fmt"
	"sort"

	"trading-journal/internal/models"
)

// GroupStat holds the statistics for one group of a breakdown.
type GroupStat struct {
	Key      string
	Trades   int
	Wins     int
	Losses   int
	PnL      float64
	WinRate  float64 // percent
	LossRate float64 // percent
	AvgPnL   float64
}

func (g *GroupStat) Add(pnl float64) {
	g.Trades++
	g.PnL += pnl
	if pnl > 0 {
		g.Wins++
	} else if pnl < 0 {
		g.Losses++
	}
}

func (g *GroupStat) Finalize() {
	if g.Trades == 0 {
		return
	}
	g.WinRate = float64(g.Wins) / float64(g.Trades) * 100
	g.LossRate = float64(g.Losses) / float64(g.Trades) * 100
	g.AvgPnL = g.PnL / float64(g.Trades)
}

// BySymbol groups trades per instrument, sorted by total pnl descending.
func BySymbol(trades []models.Trade) []GroupStat {
	groups := make(map[string]*GroupStat)
	for _, t := range trades {
		stat(groups, t.Symbol).Add(t.PnL)
	}
	return sortedByPnL(groups)
}

// ByTag groups trades per strategy tag. A trade with N tags contributes
// to all N groups, so group trade counts can exceed the input size.
func ByTag(trades []models.Trade) []GroupStat {
	groups := make(map[string]*GroupStat)
	for _, t := range trades {
		for _, tag := range t.Tags {
			stat(groups, tag).Add(t.PnL)
		}
	}
	return sortedByPnL(groups)
}

var weekdayKeys = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// ByDayOfWeek groups trades per weekday. All seven days are always
// present, Monday first, zero-filled when empty. Trades without a
// parseable date are excluded.
func ByDayOfWeek(trades []models.Trade) []GroupStat {
	groups := make(map[string]*GroupStat)
	for _, t := range trades {
		d, ok := t.ParsedDate()
		if !ok {
			continue
		}
		stat(groups, d.Weekday().String()[:3]).Add(t.PnL)
	}

	out := make([]GroupStat, 0, len(weekdayKeys))
	for _, day := range weekdayKeys {
		g := groups[day]
		if g == nil {
			g = &GroupStat{Key: day}
		}
		g.Finalize()
		out = append(out, *g)
	}
	return out
}

// ByHour groups trades per hour of day, ascending. Trades without a
// clock time are excluded.
func ByHour(trades []models.Trade) []GroupStat {
	groups := make(map[string]*GroupStat)
	for _, t := range trades {
		h, ok := t.Hour()
		if !ok {
			continue
		}
		stat(groups, fmt.Sprintf("%02d:00", h)).Add(t.PnL)
	}
	return sortedByKey(groups)
}

// ByMonth groups trades per calendar month (YYYY-MM), ascending.
func ByMonth(trades []models.Trade) []GroupStat {
	groups := make(map[string]*GroupStat)
	for _, t := range trades {
		if _, ok := t.ParsedDate(); !ok {
			continue
		}
		stat(groups, t.Date[:7]).Add(t.PnL)
	}
	return sortedByKey(groups)
}

func stat(groups map[string]*GroupStat, key string) *GroupStat {
	g, ok := groups[key]
	if !ok {
		g = &GroupStat{Key: key}
		groups[key] = g
	}
	return g
}

func sortedByPnL(groups map[string]*GroupStat) []GroupStat {
	out := collect(groups)
	sort.SliceStable(out, func(i, j int) bool { return out[i].PnL > out[j].PnL })
	return out
}

func sortedByKey(groups map[string]*GroupStat) []GroupStat {
	out := collect(groups)
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func collect(groups map[string]*GroupStat) []GroupStat {
	out := make([]GroupStat, 0, len(groups))
	for _, g := range groups {
		g.Finalize()
		out = append(out, *g)
	}
	return out
}
