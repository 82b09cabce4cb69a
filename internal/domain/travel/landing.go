package travel

// Confidence says whether a landing estimate could be computed.
type Confidence string

const (
	ConfidenceKnown   Confidence = "known"
	ConfidenceUnknown Confidence = "unknown"
)

// LandingEstimate is the computed arrival instant of a trip, in unix seconds.
// TimestampSeconds is meaningless when Confidence is unknown.
type LandingEstimate struct {
	TimestampSeconds int64
	Confidence       Confidence
}

// Known reports whether the estimate carries a usable timestamp.
func (e LandingEstimate) Known() bool {
	return e.Confidence == ConfidenceKnown
}

var unknownLanding = LandingEstimate{Confidence: ConfidenceUnknown}

// CalculateLanding adds the flight time of the destination named in logText to
// the departure time. startSeconds must already be in unix seconds; nil means
// the record had no usable start time.
//
// Every failure (missing start, no destination, destination not in the table)
// degrades to an unknown estimate.
func CalculateLanding(startSeconds *int64, logText string) LandingEstimate {
	if startSeconds == nil {
		return unknownLanding
	}

	destination := ExtractDestination(logText)
	if destination == UnknownDestination {
		return unknownLanding
	}

	duration, ok := LookupDuration(destination)
	if !ok {
		return unknownLanding
	}

	return LandingEstimate{
		TimestampSeconds: *startSeconds + int64(duration.Seconds()),
		Confidence:       ConfidenceKnown,
	}
}
