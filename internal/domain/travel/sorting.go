package travel

// SortKey orders board entries: the landing time when known, otherwise the
// departure time (seconds), otherwise zero so the entry sinks to the bottom.
func SortKey(estimate LandingEstimate, startSeconds *int64) int64 {
	if estimate.Known() {
		return estimate.TimestampSeconds
	}
	if startSeconds != nil {
		return *startSeconds
	}
	return 0
}
