package scoring

import (
	"fmt"
	"math"
)

// Urgency returns the due-date component of a score for a task due in
// daysUntilDue days (negative when overdue), and the reason fragment that
// goes with it. The fragment is empty for tasks due more than a week out.
func Urgency(daysUntilDue int) (float64, string) {
	switch {
	case daysUntilDue < 0:
		overdue := -daysUntilDue
		u := 100 + 5*overdue
		return float64(u), fmt.Sprintf("OVERDUE by %d days (+%d urgency)", overdue, u)
	case daysUntilDue == 0:
		return 80, "Due TODAY (+80 urgency)"
	case daysUntilDue == 1:
		return 60, "Due tomorrow (+60 urgency)"
	case daysUntilDue <= 3:
		return 40, fmt.Sprintf("Due in %d days (+40 urgency)", daysUntilDue)
	case daysUntilDue <= 7:
		return 20, "Due this week (+20 urgency)"
	default:
		return math.Max(0, float64(100-2*daysUntilDue)), ""
	}
}
