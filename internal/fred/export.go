package fred

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV writes observations as date,value,change,label rows.
func WriteCSV(w io.Writer, obs []Observation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "value", "change", "label"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, o := range obs {
		change := ""
		if o.Change != nil {
			change = strconv.FormatFloat(*o.Change, 'f', -1, 64)
		}
		if err := cw.Write([]string{o.Date, o.Value, change, o.Label}); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes observations as an indented JSON document.
func WriteJSON(w io.Writer, seriesID string, obs []Observation) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"series_id":    seriesID,
		"observations": obs,
	})
}
