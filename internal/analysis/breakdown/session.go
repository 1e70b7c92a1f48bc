package breakdown

import "trading-journal/internal/models"

// Intraday session buckets, in market-clock minutes since midnight.
const (
	marketOpen  = 9*60 + 30 // 09:30
	midday      = 12 * 60
	lateSession = 15 * 60
)

// Session bucket keys, in chronological order.
const (
	SessionPremarket = "premarket"
	SessionMorning   = "morning"
	SessionAfternoon = "afternoon"
	SessionClose     = "close"
)

// BySession groups trades into intraday session buckets: premarket
// before 09:30, morning until noon, afternoon until 15:00, close after.
// Trades without a clock time are excluded.
func BySession(trades []models.Trade) []GroupStat {
	groups := make(map[string]*GroupStat)
	for _, t := range trades {
		m, ok := t.Minutes()
		if !ok {
			continue
		}
		stat(groups, sessionFor(m)).Add(t.PnL)
	}

	out := make([]GroupStat, 0, 4)
	for _, key := range []string{SessionPremarket, SessionMorning, SessionAfternoon, SessionClose} {
		if g, ok := groups[key]; ok {
			g.Finalize()
			out = append(out, *g)
		}
	}
	return out
}

func sessionFor(minutes int) string {
	switch {
	case minutes < marketOpen:
		return SessionPremarket
	case minutes < midday:
		return SessionMorning
	case minutes < lateSession:
		return SessionAfternoon
	default:
		return SessionClose
	}
}
