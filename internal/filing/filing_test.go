package filing

import (
	"strings"
	"testing"
)

func TestDocument_LineAccess(t *testing.T) {
	doc := NewDocument("first\nsecond\nthird")

	if doc.Len() != 3 {
		t.Fatalf("expected 3 lines, got %d", doc.Len())
	}
	if got := doc.Line(1); got != "second" {
		t.Errorf("Line(1) = %q, want %q", got, "second")
	}
	if got := doc.Line(-1); got != "" {
		t.Errorf("Line(-1) = %q, want empty", got)
	}
	if got := doc.Line(99); got != "" {
		t.Errorf("Line(99) = %q, want empty", got)
	}
}

func TestDocument_LinesClamped(t *testing.T) {
	doc := NewDocument("a\nb\nc\nd")

	got := doc.Lines(1, 3)
	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Errorf("Lines(1, 3) = %v", got)
	}
	if got := doc.Lines(2, 100); len(got) != 2 {
		t.Errorf("Lines(2, 100) = %v, want 2 lines", got)
	}
	if got := doc.Lines(-5, 2); len(got) != 2 {
		t.Errorf("Lines(-5, 2) = %v, want 2 lines", got)
	}
	if got := doc.Lines(3, 1); got != nil {
		t.Errorf("Lines(3, 1) = %v, want nil", got)
	}
}

func TestReadDocument(t *testing.T) {
	doc, err := ReadDocument(strings.NewReader("one\ntwo\nthree"))
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	if doc.Len() != 3 {
		t.Errorf("expected 3 lines, got %d", doc.Len())
	}
	if doc.Text() != "one\ntwo\nthree" {
		t.Errorf("round trip mismatch: %q", doc.Text())
	}
}

func TestDocument_WordCount(t *testing.T) {
	doc := NewDocument("revenue grew ten percent\n\n  margins  were   stable ")
	if got := doc.WordCount(); got != 7 {
		t.Errorf("WordCount() = %d, want 7", got)
	}
}

func TestSection_WordCount(t *testing.T) {
	s := Section{Content: "net income rose sharply"}
	if got := s.WordCount(); got != 4 {
		t.Errorf("WordCount() = %d, want 4", got)
	}
}
