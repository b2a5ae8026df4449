package sentiment

import "time"

// Weight maps a comment's age in months to a multiplicative recency
// weight. Boundary ages take the more recent bucket, so a comment
// posted exactly 2 months ago still gets the 1.5 boost. Always > 0.
func Weight(ageMonths int) float64 {
	switch {
	case ageMonths <= 2:
		return 1.5
	case ageMonths <= 6:
		return 1.2
	case ageMonths <= 12:
		return 1.0
	default:
		return 0.7
	}
}

// MonthsSince parses a "YYYY-MM" posting date and returns whole months
// between it and now. Unparseable dates count as 6 months old so they
// land in the neutral 1.2/1.0 region rather than being dropped.
func MonthsSince(posted string, now time.Time) int {
	t, err := time.Parse("2006-01", posted)
	if err != nil {
		return 6
	}
	months := (now.Year()-t.Year())*12 + int(now.Month()) - int(t.Month())
	if months < 0 {
		return 0
	}
	return months
}
