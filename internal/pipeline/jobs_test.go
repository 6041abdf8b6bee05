package pipeline

import (
	"testing"
	"time"
)

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "abc", Filename: "10q.txt", Status: StatusQueued, UpdatedAt: time.Now()}
	store.Put(job)

	if got := store.Get("abc"); got != job {
		t.Fatalf("expected stored job back, got %v", got)
	}
	if got := store.Get("missing"); got != nil {
		t.Fatalf("expected nil for unknown id, got %v", got)
	}
}

func TestJobStore_CleanupEvictsExpired(t *testing.T) {
	store := NewJobStore(10 * time.Millisecond)
	job := &Job{ID: "old", UpdatedAt: time.Now().Add(-time.Minute)}
	store.Put(job)
	fresh := &Job{ID: "fresh", UpdatedAt: time.Now()}
	store.Put(fresh)

	store.Cleanup()

	if store.Get("old") != nil {
		t.Error("expected expired job evicted")
	}
	if store.Get("fresh") == nil {
		t.Error("expected fresh job retained")
	}
}

func TestJob_ProgressUpdates(t *testing.T) {
	job := &Job{ID: "j1", Status: StatusQueued}

	job.SetStatus(StatusClassifying, "classifying sections")
	job.SetSectionsFound(4)
	job.SetTotalChunks(7)
	job.IncrChunksProcessed()
	job.IncrChunksProcessed()
	job.AddError("chunk 3 failed")

	snap := job.Snapshot()
	if snap.Status != StatusClassifying {
		t.Errorf("expected classifying status, got %q", snap.Status)
	}
	if snap.Progress.SectionsFound != 4 || snap.Progress.TotalChunks != 7 || snap.Progress.ChunksProcessed != 2 {
		t.Errorf("unexpected progress %+v", snap.Progress)
	}
	if len(snap.Progress.Errors) != 1 {
		t.Errorf("expected 1 recorded error, got %v", snap.Progress.Errors)
	}
}

func TestJob_SnapshotErrorsNeverNil(t *testing.T) {
	job := &Job{ID: "j2"}
	snap := job.Snapshot()
	if snap.Progress.Errors == nil {
		t.Error("expected empty slice, not nil, for JSON serialization")
	}
}

func TestBackoff(t *testing.T) {
	for attempt, base := range []time.Duration{time.Second, 2 * time.Second, 4 * time.Second} {
		d := Backoff(attempt)
		if d < base || d > base+base/2 {
			t.Errorf("attempt %d: backoff %v outside [%v, %v]", attempt, d, base, base+base/2)
		}
	}
	if d := Backoff(20); d > 45*time.Second {
		t.Errorf("expected backoff capped near 30s, got %v", d)
	}
}
