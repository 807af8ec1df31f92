package scoring

// Strategy is a named weighting policy.
type Strategy string

const (
	StrategySmart    Strategy = "smart"
	StrategyFastest  Strategy = "fastest"
	StrategyImpact   Strategy = "impact"
	StrategyDeadline Strategy = "deadline"
)

// DefaultStrategy is used when the caller names none.
const DefaultStrategy = StrategySmart

// StrategyInfo describes a strategy for listings.
type StrategyInfo struct {
	Name        Strategy `json:"name"`
	Description string   `json:"description"`
}

var strategies = []StrategyInfo{
	{Name: StrategySmart, Description: "Balances urgency, importance, effort and how many tasks depend on it"},
	{Name: StrategyFastest, Description: "Favors low-effort tasks for quick wins"},
	{Name: StrategyImpact, Description: "Favors importance above everything else"},
	{Name: StrategyDeadline, Description: "Favors tasks with the nearest due dates"},
}

// Strategies returns the known strategies in display order.
func Strategies() []StrategyInfo {
	out := make([]StrategyInfo, len(strategies))
	copy(out, strategies)
	return out
}

// ParseStrategy looks up a strategy by its exact name. The second result
// reports whether the name is known.
func ParseStrategy(name string) (Strategy, bool) {
	s := Strategy(name)
	return s, s.IsValid()
}

// IsValid reports whether s is one of the known strategies.
func (s Strategy) IsValid() bool {
	switch s {
	case StrategySmart, StrategyFastest, StrategyImpact, StrategyDeadline:
		return true
	}
	return false
}

// String returns the strategy name.
func (s Strategy) String() string {
	return string(s)
}
