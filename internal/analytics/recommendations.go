package analytics

// Recommendation priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Recommendation is one actionable note generated from a risk profile.
type Recommendation struct {
	Category string `json:"category"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

// riskRule matches a risk profile and yields one recommendation. Rules are
// evaluated in order within each category and the first match wins; separate
// categories can all fire on the same profile.
type riskRule struct {
	match func(RiskMetrics) bool
	rec   Recommendation
}

var levelRules = []riskRule{
	{
		match: func(m RiskMetrics) bool { return m.RiskLevel == RiskExtreme },
		rec: Recommendation{
			Category: "risk_level",
			Message:  "Risk is extreme. Stop trading and review your strategy before taking another position.",
			Priority: PriorityHigh,
		},
	},
	{
		match: func(m RiskMetrics) bool { return m.RiskLevel == RiskHigh },
		rec: Recommendation{
			Category: "risk_level",
			Message:  "Risk is high. Reduce position sizes and tighten stop-losses.",
			Priority: PriorityHigh,
		},
	},
	{
		match: func(m RiskMetrics) bool { return m.RiskLevel == RiskModerate },
		rec: Recommendation{
			Category: "risk_level",
			Message:  "Risk is moderate. Keep position sizing consistent and avoid doubling down after losses.",
			Priority: PriorityMedium,
		},
	},
	{
		match: func(m RiskMetrics) bool { return m.RiskLevel == RiskLow },
		rec: Recommendation{
			Category: "risk_level",
			Message:  "Risk is under control. Maintain your current risk management discipline.",
			Priority: PriorityLow,
		},
	},
}

var drawdownRules = []riskRule{
	{
		match: func(m RiskMetrics) bool { return m.MaxDrawdown > 20 },
		rec: Recommendation{
			Category: "drawdown",
			Message:  "Maximum drawdown exceeds 20%. Cut risk per trade until the account recovers.",
			Priority: PriorityHigh,
		},
	},
}

var volatilityRules = []riskRule{
	{
		// Matches when the volatility sub-score (volatility x2, capped at
		// 100) exceeds 60.
		match: func(m RiskMetrics) bool { return m.Volatility*2 > 60 },
		rec: Recommendation{
			Category: "volatility",
			Message:  "Results are highly volatile. Standardize position sizing to smooth the equity curve.",
			Priority: PriorityMedium,
		},
	},
}

// RiskRecommendations turns a risk profile into an ordered list of
// recommendations. An unknown risk level yields no recommendations.
func RiskRecommendations(m RiskMetrics) []Recommendation {
	recs := make([]Recommendation, 0, 3)
	for _, category := range [][]riskRule{levelRules, drawdownRules, volatilityRules} {
		for _, rule := range category {
			if rule.match(m) {
				recs = append(recs, rule.rec)
				break
			}
		}
	}
	return recs
}
