// Package board turns raw flight log records into the rows the dashboard
// shows: who is flying where, when they land, and how far away that is.
package board

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"torn_flight_board/internal/app"
	"torn_flight_board/internal/domain/travel"
)

// Row is one rendered flight log entry
type Row struct {
	UserID      string           `json:"user_id"`
	DisplayName string           `json:"display_name"`
	LogText     string           `json:"flight_log"`
	Destination string           `json:"destination,omitempty"`
	Direction   travel.Direction `json:"direction"`
	Departed    string           `json:"departed"`
	Landing     string           `json:"landing"`
	DisplayText string           `json:"display_text"`
	Polarity    travel.Polarity  `json:"polarity"`
	SortKey     int64            `json:"sort_key"`
}

// Board is the full rendered table at a single instant
type Board struct {
	GeneratedAt time.Time `json:"generated_at"`
	FetchedAt   time.Time `json:"fetched_at,omitzero"`
	Rows        []Row     `json:"rows"`
	Error       string    `json:"error,omitempty"`
}

// Build renders records into rows sorted by landing time, newest first.
// names maps numeric user IDs to resolved player names and may be nil.
//
// Pure function: the caller supplies now, so the same inputs always give the same board.
func Build(records []app.FlightLog, names map[int]string, now time.Time, loc *time.Location) Board {
	if loc == nil {
		loc = time.UTC
	}

	rows := make([]Row, 0, len(records))
	for _, record := range records {
		rows = append(rows, BuildRow(record, names, now.Unix(), loc))
	}

	SortRows(rows)

	return Board{
		GeneratedAt: now,
		Rows:        rows,
	}
}

// BuildRow renders a single record
func BuildRow(record app.FlightLog, names map[int]string, nowSeconds int64, loc *time.Location) Row {
	var start *int64
	if value, ok := record.Timestamp.Int(); ok {
		seconds := travel.NormalizeUnixSeconds(value)
		start = &seconds
	}

	trip := travel.ParseTrip(record.LogText)
	estimate := travel.CalculateLanding(start, record.LogText)

	row := Row{
		UserID:      userIDText(record.UserID),
		DisplayName: displayName(record, names),
		LogText:     displayOrNA(record.LogText),
		Destination: trip.Destination,
		Direction:   trip.Direction,
		Departed:    travel.FormatTimestamp(record.Timestamp.Raw, loc),
		Landing:     travel.NotAvailable,
		SortKey:     travel.SortKey(estimate, start),
	}

	if estimate.Known() {
		relative := travel.FormatRelative(estimate.TimestampSeconds, nowSeconds)
		row.Landing = travel.FormatUnixSeconds(estimate.TimestampSeconds, loc)
		row.DisplayText = relative.Text
		row.Polarity = relative.Polarity
	} else {
		row.DisplayText = row.Departed
		row.Polarity = travel.PolarityNeutral
	}

	return row
}

// SortRows orders rows by sort key, highest first. Rows with equal keys keep
// their input order.
func SortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].SortKey > rows[j].SortKey
	})
}

// UserIDs returns the distinct numeric user IDs that still need a name
func UserIDs(records []app.FlightLog) []int {
	seen := make(map[int]bool)
	var ids []int
	for _, record := range records {
		if record.Username != "" {
			continue
		}
		id, ok := record.UserID.Int()
		if !ok || id <= 0 {
			continue
		}
		if !seen[int(id)] {
			seen[int(id)] = true
			ids = append(ids, int(id))
		}
	}
	return ids
}

func displayName(record app.FlightLog, names map[int]string) string {
	if record.Username != "" {
		return record.Username
	}
	if id, ok := record.UserID.Int(); ok {
		if name := names[int(id)]; name != "" {
			return name
		}
	}
	return travel.NotAvailable
}

func userIDText(id app.RawValue) string {
	if id.IsEmpty() {
		return travel.NotAvailable
	}
	return strings.TrimSpace(id.Raw)
}

func displayOrNA(s string) string {
	if s == "" {
		return travel.NotAvailable
	}
	return s
}

// FormatUserLink renders a user as "Name [id]", the way Torn writes player references
func FormatUserLink(row Row) string {
	if row.DisplayName == travel.NotAvailable {
		return row.UserID
	}
	if _, err := strconv.Atoi(row.UserID); err != nil {
		return row.DisplayName
	}
	return row.DisplayName + " [" + row.UserID + "]"
}
