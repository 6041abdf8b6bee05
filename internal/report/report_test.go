package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/secsent/internal/classify"
)

func sampleResults() []classify.SectionResult {
	return []classify.SectionResult{
		{Name: "MD&A", ItemNumber: "Item 2", Label: classify.Positive, WordCount: 2600, Subsections: 2, Content: "revenue surged"},
		{Name: "Risk Factors", ItemNumber: "Item 1A", Label: classify.Negative, WordCount: 900, Subsections: 1, Content: "risks abound"},
	}
}

func TestBuildSummary(t *testing.T) {
	s := BuildSummary("/data/NVDA_10Q.txt", 48000, sampleResults())

	if s.SourceFile != "NVDA_10Q.txt" {
		t.Errorf("expected base filename, got %q", s.SourceFile)
	}
	if s.OriginalWordCount != 48000 {
		t.Errorf("unexpected original word count %d", s.OriginalWordCount)
	}
	if s.TotalAnalyzedWords != 3500 {
		t.Errorf("expected analyzed words summed to 3500, got %d", s.TotalAnalyzedWords)
	}
	if len(s.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(s.Sections))
	}
	if s.Sections[0].Sentiment != classify.Positive || s.Sections[1].Sentiment != classify.Negative {
		t.Errorf("unexpected sentiments %+v", s.Sections)
	}
	if s.AnalysisDate == "" {
		t.Error("expected analysis date set")
	}
}

func TestWriteJSONSummary(t *testing.T) {
	dir := t.TempDir()
	s := BuildSummary("NVDA_10Q.txt", 48000, sampleResults())

	path, err := WriteJSONSummary(dir, "NVDA_10Q", s)
	if err != nil {
		t.Fatalf("WriteJSONSummary: %v", err)
	}
	if filepath.Base(path) != "NVDA_10Q_sentiment.json" {
		t.Errorf("unexpected filename %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	var got Summary
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("summary is not valid JSON: %v", err)
	}
	if got.TotalAnalyzedWords != 3500 {
		t.Errorf("round trip lost data: %+v", got)
	}
}

func TestWriteTextSummary(t *testing.T) {
	dir := t.TempDir()
	s := BuildSummary("NVDA_10Q.txt", 48000, sampleResults())

	path, err := WriteTextSummary(dir, "NVDA_10Q", s)
	if err != nil {
		t.Fatalf("WriteTextSummary: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	text := string(data)

	for _, want := range []string{
		"SENTIMENT ANALYSIS RESULTS",
		"Source File: NVDA_10Q.txt",
		"POSITIVE",
		"NEGATIVE",
		"(2 parts)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected summary to contain %q, got:\n%s", want, text)
		}
	}
}

func TestWriteSectionFiles(t *testing.T) {
	dir := t.TempDir()

	paths, err := WriteSectionFiles(dir, "NVDA_10Q", sampleResults())
	if err != nil {
		t.Fatalf("WriteSectionFiles: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 files, got %d", len(paths))
	}
	if filepath.Base(paths[0]) != "NVDA_10Q_MDandA.txt" {
		t.Errorf("expected sanitized section filename, got %q", paths[0])
	}

	data, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatalf("read section file: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "SECTION: MD&A (Item 2)") {
		t.Errorf("expected provenance header, got:\n%s", text)
	}
	if !strings.Contains(text, "revenue surged") {
		t.Errorf("expected section content, got:\n%s", text)
	}
}
