package valueobject

import "fmt"

// RecommendedAction is the operator-facing follow-up derived from a
// risk tier.
type RecommendedAction struct {
	value string
}

var (
	ActionCleanupCandidate = RecommendedAction{value: "CLEANUP_CANDIDATE"}
	ActionInvestigate      = RecommendedAction{value: "INVESTIGATE"}
	ActionMonitor          = RecommendedAction{value: "MONITOR"}
	ActionKeep             = RecommendedAction{value: "KEEP"}
)

// RecommendedActionFromString reconstructs an action from its string form.
func RecommendedActionFromString(s string) (RecommendedAction, error) {
	switch s {
	case "CLEANUP_CANDIDATE":
		return ActionCleanupCandidate, nil
	case "INVESTIGATE":
		return ActionInvestigate, nil
	case "MONITOR":
		return ActionMonitor, nil
	case "KEEP":
		return ActionKeep, nil
	default:
		return RecommendedAction{}, fmt.Errorf("invalid recommended action: %s", s)
	}
}

// ActionFromTier derives the recommended follow-up for a risk tier.
func ActionFromTier(tier RiskTier) RecommendedAction {
	switch tier {
	case TierHigh:
		return ActionCleanupCandidate
	case TierMedium:
		return ActionInvestigate
	case TierLow:
		return ActionMonitor
	default:
		return ActionKeep
	}
}

// String returns the string representation.
func (a RecommendedAction) String() string {
	return a.value
}

// IsZero returns true if the action has not been set.
func (a RecommendedAction) IsZero() bool {
	return a.value == ""
}

// Equal checks equality with another RecommendedAction.
func (a RecommendedAction) Equal(other RecommendedAction) bool {
	return a.value == other.value
}
