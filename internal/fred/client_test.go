package fred

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLabelObservations(t *testing.T) {
	obs := []Observation{
		{Date: "2024-01-01", Value: "3.7"},
		{Date: "2024-02-01", Value: "3.9"},
		{Date: "2024-03-01", Value: "3.5"},
		{Date: "2024-04-01", Value: "."},
		{Date: "2024-05-01", Value: "3.5"},
		{Date: "2024-06-01", Value: "3.5"},
	}

	LabelObservations(obs)

	if obs[0].Label != "neutral" || obs[0].Change == nil || *obs[0].Change != 0 {
		t.Errorf("first row: expected neutral baseline with change 0, got %+v", obs[0])
	}
	if obs[1].Label != "good" {
		t.Errorf("rising value: expected good, got %q", obs[1].Label)
	}
	if obs[2].Label != "bad" {
		t.Errorf("falling value: expected bad, got %q", obs[2].Label)
	}
	if obs[3].Label != "neutral" || obs[3].Change != nil {
		t.Errorf("unparseable value: expected neutral with nil change, got %+v", obs[3])
	}
	if obs[4].Label != "neutral" || obs[4].Change != nil {
		t.Errorf("row after a gap: expected neutral with nil change, got %+v", obs[4])
	}
	if obs[5].Label != "neutral" || obs[5].Change == nil || *obs[5].Change != 0 {
		t.Errorf("flat value: expected neutral with change 0, got %+v", obs[5])
	}
}

func TestObservations_QueryAndLabels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/series/observations" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("series_id") != "UNRATE" {
			t.Errorf("expected series_id UNRATE, got %q", q.Get("series_id"))
		}
		if q.Get("api_key") != "test-key" || q.Get("file_type") != "json" {
			t.Errorf("missing auth params: %v", q)
		}
		if q.Get("observation_start") != "2024-01-01" || q.Get("frequency") != "m" || q.Get("limit") != "12" {
			t.Errorf("unexpected query params: %v", q)
		}
		w.Write([]byte(`{"observations":[
			{"date":"2024-01-01","value":"3.7"},
			{"date":"2024-02-01","value":"3.9"}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key")
	defer client.Close()

	obs, err := client.Observations(context.Background(), ObservationRequest{
		SeriesID:  "UNRATE",
		StartDate: "2024-01-01",
		Frequency: "m",
		MaxRows:   12,
	})
	if err != nil {
		t.Fatalf("Observations: %v", err)
	}
	if len(obs) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(obs))
	}
	if obs[1].Label != "good" {
		t.Errorf("expected observations labeled on fetch, got %q", obs[1].Label)
	}
}

func TestSearchSeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"seriess":[{"id":"UNRATE","title":"Unemployment Rate","frequency":"Monthly","units":"Percent"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "k")
	defer client.Close()

	series, err := client.SearchSeries(context.Background(), "unemployment", 5)
	if err != nil {
		t.Fatalf("SearchSeries: %v", err)
	}
	if len(series) != 1 || series[0].ID != "UNRATE" {
		t.Errorf("unexpected result %+v", series)
	}
}

func TestSeriesInfo_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"seriess":[]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "k")
	defer client.Close()

	if _, err := client.SeriesInfo(context.Background(), "NOPE"); err == nil {
		t.Fatal("expected error for unknown series")
	}
}

func TestGet_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad api key", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "wrong")
	defer client.Close()

	_, err := client.SearchSeries(context.Background(), "gdp", 1)
	if err == nil || !strings.Contains(err.Error(), "status 400") {
		t.Fatalf("expected status error, got %v", err)
	}
}
