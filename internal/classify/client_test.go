package classify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClassify_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/sentiment" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Text != "revenue grew strongly" {
			t.Errorf("unexpected text %q", req.Text)
		}
		json.NewEncoder(w).Encode(map[string]any{"label": "positive", "score": 0.93})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	defer client.Close()

	label, err := client.Classify(context.Background(), "revenue grew strongly")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if label != Positive {
		t.Errorf("expected positive, got %q", label)
	}
}

func TestClassify_RetryableStatuses(t *testing.T) {
	for _, status := range []int{http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "overloaded", status)
		}))

		client := NewClient(srv.URL)
		_, err := client.Classify(context.Background(), "text")

		var retryable *RetryableError
		if !errors.As(err, &retryable) {
			t.Errorf("status %d: expected RetryableError, got %v", status, err)
		} else if retryable.StatusCode != status {
			t.Errorf("expected status %d, got %d", status, retryable.StatusCode)
		}

		client.Close()
		srv.Close()
	}
}

func TestClassify_NonRetryableStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	defer client.Close()

	_, err := client.Classify(context.Background(), "text")
	if err == nil {
		t.Fatal("expected error")
	}
	var retryable *RetryableError
	if errors.As(err, &retryable) {
		t.Errorf("400 must not be retryable: %v", err)
	}
}

func TestClassify_UnknownLabelRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"label": "bullish", "score": 0.8})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	defer client.Close()

	if _, err := client.Classify(context.Background(), "text"); err == nil {
		t.Fatal("expected error for out-of-vocabulary label")
	}
}

func TestClassify_ModelError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"error": "sequence too long"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	defer client.Close()

	if _, err := client.Classify(context.Background(), "text"); err == nil {
		t.Fatal("expected error when the model reports one")
	}
}

func TestValidLabel(t *testing.T) {
	for _, l := range []Label{Positive, Negative, Neutral} {
		if !ValidLabel(l) {
			t.Errorf("expected %q valid", l)
		}
	}
	for _, l := range []Label{"", "POSITIVE", "mixed"} {
		if ValidLabel(l) {
			t.Errorf("expected %q invalid", l)
		}
	}
}
