package domain

// Priority tiers, highest urgency first.
const (
	PriorityP1 = "P1"
	PriorityP2 = "P2"
	PriorityP3 = "P3"
)

// Urgency levels for the single-item ordering flow.
const (
	UrgencyHigh   = "high"
	UrgencyMedium = "medium"
	UrgencyLow    = "low"
)

var priorityRanks = map[string]int{
	PriorityP1: 1,
	PriorityP2: 2,
	PriorityP3: 3,
}

// PriorityRank returns the sort rank for a priority tier; unknown tiers sort last.
func PriorityRank(priority string) int {
	if rank, ok := priorityRanks[priority]; ok {
		return rank
	}

	return len(priorityRanks) + 1
}
