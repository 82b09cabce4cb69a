package app

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlightLog represents a single record from the flight log endpoint
type FlightLog struct {
	UserID    RawValue `json:"user_id"`
	Username  string   `json:"username,omitempty"`
	LogText   string   `json:"flight_log"`
	Timestamp RawValue `json:"timestamp"`
}

// RawValue holds a JSON scalar that may arrive as a number or a string.
// The original text is kept so values we cannot parse can still be shown.
type RawValue struct {
	Raw string
}

// UnmarshalJSON accepts numbers, strings and null
func (v *RawValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		v.Raw = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v.Raw = s
		return nil
	}

	// Numbers (and booleans) keep their literal text so large values don't
	// lose precision through float64
	v.Raw = string(data)
	return nil
}

// MarshalJSON writes the raw text back as a string
func (v RawValue) MarshalJSON() ([]byte, error) {
	if v.Raw == "" {
		return []byte("null"), nil
	}
	return json.Marshal(v.Raw)
}

// String returns the raw text
func (v RawValue) String() string {
	return v.Raw
}

// IsEmpty reports whether the value was missing, null or blank
func (v RawValue) IsEmpty() bool {
	return strings.TrimSpace(v.Raw) == ""
}

// Int parses the value as a base-10 integer
func (v RawValue) Int() (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(v.Raw), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// DecodeFlightLogs decodes an endpoint body that may hold either an array of
// records or a single record object
func DecodeFlightLogs(body []byte) ([]FlightLog, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return []FlightLog{}, nil
	}

	if body[0] == '[' {
		var logs []FlightLog
		if err := json.Unmarshal(body, &logs); err != nil {
			return nil, err
		}
		if logs == nil {
			logs = []FlightLog{}
		}
		return logs, nil
	}

	var single FlightLog
	if err := json.Unmarshal(body, &single); err != nil {
		return nil, err
	}
	return []FlightLog{single}, nil
}

// UserBasicResponse represents the response from /user/{id}?selections=basic
type UserBasicResponse struct {
	PlayerID int    `json:"player_id"`
	Name     string `json:"name"`
	Level    int    `json:"level"`
	Gender   string `json:"gender"`
	Status   struct {
		Description string `json:"description"`
		State       string `json:"state"`
	} `json:"status"`
}

// FactionMember represents a member entry in /v2/faction/members
type FactionMember struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// FactionMembersResponse represents the response from /v2/faction/members
type FactionMembersResponse struct {
	Members []FactionMember `json:"members"`
}
