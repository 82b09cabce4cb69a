package app

import (
	"encoding/json"
	"testing"
)

func TestDecodeFlightLogs(t *testing.T) {
	t.Run("Array", func(t *testing.T) {
		body := `[
			{"user_id": 2114440, "flight_log": "Traveling to Mexico", "timestamp": 1700000000},
			{"user_id": "42", "username": "Chedburn", "flight_log": "Torn <-> China", "timestamp": "1700000000123"}
		]`

		logs, err := DecodeFlightLogs([]byte(body))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(logs) != 2 {
			t.Fatalf("Expected 2 logs, got %d", len(logs))
		}

		if id, ok := logs[0].UserID.Int(); !ok || id != 2114440 {
			t.Errorf("Expected numeric user id 2114440, got %q", logs[0].UserID.Raw)
		}
		if id, ok := logs[1].UserID.Int(); !ok || id != 42 {
			t.Errorf("Expected string user id 42, got %q", logs[1].UserID.Raw)
		}
		if logs[1].Username != "Chedburn" {
			t.Errorf("Expected username Chedburn, got %q", logs[1].Username)
		}
		if logs[1].Timestamp.Raw != "1700000000123" {
			t.Errorf("Expected raw timestamp preserved, got %q", logs[1].Timestamp.Raw)
		}
	})

	t.Run("SingleObject", func(t *testing.T) {
		logs, err := DecodeFlightLogs([]byte(`{"user_id": 1, "flight_log": "Traveling to UAE", "timestamp": 5}`))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(logs) != 1 || logs[0].LogText != "Traveling to UAE" {
			t.Errorf("Expected single wrapped record, got %+v", logs)
		}
	})

	t.Run("EmptyInputs", func(t *testing.T) {
		for _, body := range []string{"", "null", "[]", "  "} {
			logs, err := DecodeFlightLogs([]byte(body))
			if err != nil {
				t.Errorf("DecodeFlightLogs(%q) returned error %v", body, err)
			}
			if logs == nil || len(logs) != 0 {
				t.Errorf("DecodeFlightLogs(%q) expected empty slice, got %v", body, logs)
			}
		}
	})

	t.Run("NullFields", func(t *testing.T) {
		logs, err := DecodeFlightLogs([]byte(`[{"user_id": null, "flight_log": null, "timestamp": null}]`))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !logs[0].UserID.IsEmpty() || !logs[0].Timestamp.IsEmpty() {
			t.Errorf("Expected null fields to be empty, got %+v", logs[0])
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		if _, err := DecodeFlightLogs([]byte(`[{"user_id": 1,`)); err == nil {
			t.Error("Expected error for truncated body")
		}
	})
}

func TestRawValue(t *testing.T) {
	var v RawValue
	if err := json.Unmarshal([]byte(`"not a number"`), &v); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, ok := v.Int(); ok {
		t.Error("Expected non-numeric value to fail Int()")
	}
	if v.String() != "not a number" {
		t.Errorf("Expected raw text preserved, got %q", v.String())
	}

	out, err := json.Marshal(RawValue{Raw: "123"})
	if err != nil || string(out) != `"123"` {
		t.Errorf("Expected \"123\", got %s (err=%v)", out, err)
	}

	out, err = json.Marshal(RawValue{})
	if err != nil || string(out) != "null" {
		t.Errorf("Expected null, got %s (err=%v)", out, err)
	}
}
