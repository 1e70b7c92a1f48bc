// Package insights applies heuristic pattern rules over trade breakdowns
// and emits human-readable observations. Rules live in a uniform
// descriptor list evaluated in priority order, so adding or removing one
// never touches control flow.
package insights

import (
	"fmt"

	"trading-journal/internal/analysis/breakdown"
	"trading-journal/internal/analysis/metrics"
	"trading-journal/internal/models"
)

// Severity classifies an insight for presentation.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Insight is one pattern observation.
type Insight struct {
	Severity Severity
	Title    string
	Detail   string
}

// At most this many insights are reported; rules earlier in the list win
// when more fire.
const maxInsights = 6

// rule evaluates one heuristic against the precomputed breakdowns.
// Returning nil means the rule did not fire.
type rule func(*ruleContext) *Insight

// Priority order doubles as the deterministic truncation order.
var rules = []rule{
	bestSymbol,
	worstSymbol,
	bestDay,
	worstDay,
	bestSession,
	worstSession,
	bestTag,
	worstTag,
	sideBias,
	fridayAfternoon,
	lossTilt,
}

// Generate runs every rule over the trades and returns up to six
// insights in rule-priority order. Pass the full collection: the tilt
// rule in particular is defined over all trades, not a filtered view.
func Generate(trades []models.Trade) []Insight {
	if len(trades) == 0 {
		return nil
	}

	ctx := newRuleContext(trades)
	var out []Insight
	for _, r := range rules {
		if len(out) == maxInsights {
			break
		}
		if ins := r(ctx); ins != nil {
			out = append(out, *ins)
		}
	}
	return out
}

// ruleContext carries the breakdowns shared by the rules.
type ruleContext struct {
	symbols       []breakdown.GroupStat
	days          []breakdown.GroupStat
	sessions      []breakdown.GroupStat
	tags          []breakdown.GroupStat
	longs         breakdown.GroupStat
	shorts        breakdown.GroupStat
	friday        breakdown.GroupStat // Friday trades at 14:00 or later
	maxLossStreak int
}

func newRuleContext(trades []models.Trade) *ruleContext {
	ctx := &ruleContext{
		symbols:  breakdown.BySymbol(trades),
		days:     breakdown.ByDayOfWeek(trades),
		sessions: breakdown.BySession(trades),
		tags:     breakdown.ByTag(trades),
	}

	longs := breakdown.GroupStat{Key: "long"}
	shorts := breakdown.GroupStat{Key: "short"}
	friday := breakdown.GroupStat{Key: "friday-afternoon"}
	for _, t := range trades {
		switch t.Side {
		case models.SideLong:
			longs.Add(t.PnL)
		case models.SideShort:
			shorts.Add(t.PnL)
		}
		if d, ok := t.ParsedDate(); ok {
			if h, hok := t.Hour(); hok && d.Weekday().String()[:3] == "Fri" && h >= 14 {
				friday.Add(t.PnL)
			}
		}
	}
	longs.Finalize()
	shorts.Finalize()
	friday.Finalize()
	ctx.longs, ctx.shorts, ctx.friday = longs, shorts, friday

	s := metrics.Compute(trades)
	ctx.maxLossStreak = s.LoseStreak

	return ctx
}

func bestSymbol(ctx *ruleContext) *Insight {
	for _, g := range ctx.symbols { // sorted by pnl descending
		if g.Trades >= 3 && g.PnL > 0 {
			return &Insight{
				Severity: SeveritySuccess,
				Title:    fmt.Sprintf("%s is your best performer", g.Key),
				Detail:   fmt.Sprintf("%.0f%% win rate and $%.2f profit across %d trades.", g.WinRate, g.PnL, g.Trades),
			}
		}
	}
	return nil
}

func worstSymbol(ctx *ruleContext) *Insight {
	for i := len(ctx.symbols) - 1; i >= 0; i-- {
		g := ctx.symbols[i]
		if g.Trades >= 3 && g.PnL < -100 {
			return &Insight{
				Severity: SeverityWarning,
				Title:    fmt.Sprintf("%s is costing you money", g.Key),
				Detail:   fmt.Sprintf("You lose %.0f%% of %s trades, $%.2f in total. Consider avoiding it.", g.LossRate, g.Key, -g.PnL),
			}
		}
	}
	return nil
}

func bestDay(ctx *ruleContext) *Insight {
	if g := topByPnL(ctx.days, 3); g != nil {
		return &Insight{
			Severity: SeverityInfo,
			Title:    fmt.Sprintf("%s is your strongest day", g.Key),
			Detail:   fmt.Sprintf("$%.2f total across %d trades (%.0f%% win rate).", g.PnL, g.Trades, g.WinRate),
		}
	}
	return nil
}

func worstDay(ctx *ruleContext) *Insight {
	if g := bottomByPnL(ctx.days, 3); g != nil && g.PnL < 0 {
		return &Insight{
			Severity: SeverityWarning,
			Title:    fmt.Sprintf("%s trades are hurting you", g.Key),
			Detail:   fmt.Sprintf("$%.2f lost across %d trades on %ss.", -g.PnL, g.Trades, g.Key),
		}
	}
	return nil
}

func bestSession(ctx *ruleContext) *Insight {
	if g := topByWinRate(ctx.sessions, 3); g != nil {
		return &Insight{
			Severity: SeveritySuccess,
			Title:    fmt.Sprintf("You trade the %s session best", g.Key),
			Detail:   fmt.Sprintf("%.0f%% win rate across %d trades.", g.WinRate, g.Trades),
		}
	}
	return nil
}

func worstSession(ctx *ruleContext) *Insight {
	if g := bottomByWinRate(ctx.sessions, 5); g != nil && g.LossRate >= 60 {
		return &Insight{
			Severity: SeverityWarning,
			Title:    fmt.Sprintf("The %s session works against you", g.Key),
			Detail:   fmt.Sprintf("You lose %.0f%% of %d trades there.", g.LossRate, g.Trades),
		}
	}
	return nil
}

func bestTag(ctx *ruleContext) *Insight {
	if g := topByWinRate(ctx.tags, 5); g != nil {
		return &Insight{
			Severity: SeveritySuccess,
			Title:    fmt.Sprintf("%s is your best strategy", g.Key),
			Detail:   fmt.Sprintf("%.0f%% win rate and $%.2f across %d trades.", g.WinRate, g.PnL, g.Trades),
		}
	}
	return nil
}

func worstTag(ctx *ruleContext) *Insight {
	if g := bottomByWinRate(ctx.tags, 5); g != nil && g.LossRate >= 60 {
		return &Insight{
			Severity: SeverityWarning,
			Title:    fmt.Sprintf("%s setups are not working", g.Key),
			Detail:   fmt.Sprintf("You lose %.0f%% of %d trades tagged %s.", g.LossRate, g.Trades, g.Key),
		}
	}
	return nil
}

func sideBias(ctx *ruleContext) *Insight {
	if ctx.longs.Trades < 5 || ctx.shorts.Trades < 5 {
		return nil
	}
	gap := ctx.longs.WinRate - ctx.shorts.WinRate
	stronger, weaker := ctx.longs, ctx.shorts
	if gap < 0 {
		gap = -gap
		stronger, weaker = ctx.shorts, ctx.longs
	}
	if gap < 20 {
		return nil
	}
	return &Insight{
		Severity: SeverityInfo,
		Title:    fmt.Sprintf("You trade %s better than %s", stronger.Key, weaker.Key),
		Detail: fmt.Sprintf("%.0f%% vs %.0f%% win rate, a %.0f point gap.",
			stronger.WinRate, weaker.WinRate, gap),
	}
}

func fridayAfternoon(ctx *ruleContext) *Insight {
	if ctx.friday.Trades < 5 || ctx.friday.LossRate < 70 {
		return nil
	}
	return &Insight{
		Severity: SeverityWarning,
		Title:    "Friday afternoons are a leak",
		Detail: fmt.Sprintf("You lose %.0f%% of trades opened on Fridays after 2pm (%d trades).",
			ctx.friday.LossRate, ctx.friday.Trades),
	}
}

func lossTilt(ctx *ruleContext) *Insight {
	if ctx.maxLossStreak < 5 {
		return nil
	}
	return &Insight{
		Severity: SeverityWarning,
		Title:    "Watch for tilt",
		Detail: fmt.Sprintf("You hit a run of %d consecutive losses. Consider stepping away after three in a row.",
			ctx.maxLossStreak),
	}
}

func topByPnL(groups []breakdown.GroupStat, minTrades int) *breakdown.GroupStat {
	var best *breakdown.GroupStat
	for i := range groups {
		g := &groups[i]
		if g.Trades < minTrades {
			continue
		}
		if best == nil || g.PnL > best.PnL {
			best = g
		}
	}
	return best
}

func bottomByPnL(groups []breakdown.GroupStat, minTrades int) *breakdown.GroupStat {
	var worst *breakdown.GroupStat
	for i := range groups {
		g := &groups[i]
		if g.Trades < minTrades {
			continue
		}
		if worst == nil || g.PnL < worst.PnL {
			worst = g
		}
	}
	return worst
}

func topByWinRate(groups []breakdown.GroupStat, minTrades int) *breakdown.GroupStat {
	var best *breakdown.GroupStat
	for i := range groups {
		g := &groups[i]
		if g.Trades < minTrades {
			continue
		}
		if best == nil || g.WinRate > best.WinRate {
			best = g
		}
	}
	return best
}

func bottomByWinRate(groups []breakdown.GroupStat, minTrades int) *breakdown.GroupStat {
	var worst *breakdown.GroupStat
	for i := range groups {
		g := &groups[i]
		if g.Trades < minTrades {
			continue
		}
		if worst == nil || g.WinRate < worst.WinRate {
			worst = g
		}
	}
	return worst
}
