package fred

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestWriteCSV(t *testing.T) {
	change := 0.2
	obs := []Observation{
		{Date: "2024-01-01", Value: "3.7", Change: nil, Label: "neutral"},
		{Date: "2024-02-01", Value: "3.9", Change: &change, Label: "good"},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, obs); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines: %q", len(lines), buf.String())
	}
	if lines[0] != "date,value,change,label" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[1] != "2024-01-01,3.7,,neutral" {
		t.Errorf("expected empty change cell for nil, got %q", lines[1])
	}
	if lines[2] != "2024-02-01,3.9,0.2,good" {
		t.Errorf("unexpected row %q", lines[2])
	}
}

func TestWriteJSON(t *testing.T) {
	zero := 0.0
	obs := []Observation{{Date: "2024-01-01", Value: "3.7", Change: &zero, Label: "neutral"}}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, "UNRATE", obs); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var out struct {
		SeriesID     string        `json:"series_id"`
		Observations []Observation `json:"observations"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out.SeriesID != "UNRATE" || len(out.Observations) != 1 {
		t.Errorf("unexpected output %+v", out)
	}
}
