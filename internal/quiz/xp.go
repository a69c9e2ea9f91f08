package quiz

// tier maps a minimum percentage to a reward. Tiers are checked in order.
type tier struct {
	minPercent int
	xp         int
}

var xpTiers = []tier{
	{minPercent: 100, xp: 50},
	{minPercent: 80, xp: 40},
	{minPercent: 50, xp: 30},
}

// XPFor returns the experience points earned for correct answers out of total.
// Thresholds are compared on the exact ratio correct/total, so 4 of 5 lands
// in the 80% tier regardless of float rounding.
func XPFor(correct, total int) int {
	if total <= 0 {
		return 0
	}
	for _, t := range xpTiers {
		if atLeast(correct, total, t.minPercent) {
			return t.xp
		}
	}
	return 0
}

// atLeast reports whether correct/total >= percent/100 without floating point
func atLeast(correct, total, percent int) bool {
	return correct*100 >= percent*total
}

// percentOf returns 100*correct/total as a float
func percentOf(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct*100) / float64(total)
}
