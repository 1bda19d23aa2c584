package core

// FinancialGoal is the monthly savings target with what is still available this month.
type FinancialGoal struct {
	TargetAmount    float64 `json:"targetAmount"`
	AvailableAmount float64 `json:"availableAmount"`
	GoalReached     bool    `json:"goalReached"`
}

// GoalHistoryEntry records how a past month ended against its target.
type GoalHistoryEntry struct {
	Month           int     `json:"month"`
	Year            int     `json:"year"`
	TargetAmount    float64 `json:"targetAmount"`
	AvailableAmount float64 `json:"availableAmount"`
	Achieved        bool    `json:"achieved"`
}

const (
	MsgGoalReached = "Congrats! You've reached your savings goal!"
	MsgGoalClose   = "You're on your way! Just a little more to go!"
	MsgGoalHalfway = "Halfway there! Keep pushing!"
	MsgGoalBehind  = "You've spent quite a bit, try to hold back a bit more."
)

// ProgressMessage describes how close the available amount is to the target.
// Without a positive target there is nothing to report.
func ProgressMessage(target, available float64) string {
	switch {
	case target <= 0:
		return ""
	case available >= target:
		return MsgGoalReached
	case available >= 0.75*target:
		return MsgGoalClose
	case available >= 0.5*target:
		return MsgGoalHalfway
	default:
		return MsgGoalBehind
	}
}
