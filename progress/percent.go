package progress

// Percentage returns how far current is between start and total, in
// [0, 100].
//
// A range that is empty or reversed (total <= start) and a counter at or
// before start both yield 0. A counter at or past total yields 100. Values in
// between are capped at maxPercent when maxPercent is in (0, 100).
func Percentage(start, total, current int64, maxPercent float64) float64 {
	if total <= start || current <= start {
		return 0
	}
	if current >= total {
		return 100
	}

	// Differences are taken in float64 so that ranges spanning most of the
	// int64 domain cannot overflow.
	percent := (float64(current) - float64(start)) / (float64(total) - float64(start)) * 100
	if maxPercent > 0 && percent > maxPercent {
		return maxPercent
	}
	if percent > 100 {
		return 100
	}
	return percent
}
