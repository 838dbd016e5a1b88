package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestStatusFlagWireFormat(t *testing.T) {
	raw, err := json.Marshal(QuizRecord{ID: "quiz_a1", Status: StatusActive})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"status":1`) {
		t.Fatalf("expected numeric status flag, got %s", raw)
	}
}

func TestStatusFlagAcceptsLegacyValues(t *testing.T) {
	cases := map[string]bool{
		`{"status":1}`:     true,
		`{"status":true}`:  true,
		`{"status":0}`:     false,
		`{"status":false}`: false,
		`{"status":null}`:  false,
	}
	for input, want := range cases {
		var record QuizRecord
		if err := json.Unmarshal([]byte(input), &record); err != nil {
			t.Fatalf("unmarshal %s: %v", input, err)
		}
		if record.Active() != want {
			t.Fatalf("input %s: expected active=%v", input, want)
		}
	}
}
