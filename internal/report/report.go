// Package report writes per-section cleaned text files and analysis
// summaries. File naming and layout live here, not in the core.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/secsent/internal/classify"
)

// Summary is the JSON analysis summary for one filing.
type Summary struct {
	SourceFile         string           `json:"source_file"`
	AnalysisDate       string           `json:"analysis_date"`
	OriginalWordCount  int              `json:"original_word_count"`
	TotalAnalyzedWords int              `json:"total_analyzed_words"`
	Sections           []SectionSummary `json:"sections"`
}

// SectionSummary is one section's entry in the summary.
type SectionSummary struct {
	Name        string         `json:"name"`
	ItemNumber  string         `json:"item_number"`
	Sentiment   classify.Label `json:"sentiment"`
	WordCount   int            `json:"word_count"`
	Subsections int            `json:"subsections"`
}

// BuildSummary assembles a Summary from section results in the given
// order.
func BuildSummary(sourceFile string, originalWords int, results []classify.SectionResult) Summary {
	s := Summary{
		SourceFile:        filepath.Base(sourceFile),
		AnalysisDate:      time.Now().Format(time.RFC3339),
		OriginalWordCount: originalWords,
	}
	for _, r := range results {
		s.TotalAnalyzedWords += r.WordCount
		s.Sections = append(s.Sections, SectionSummary{
			Name:        r.Name,
			ItemNumber:  r.ItemNumber,
			Sentiment:   r.Label,
			WordCount:   r.WordCount,
			Subsections: r.Subsections,
		})
	}
	return s
}

// WriteSectionFiles saves each section's cleaned content under dir as
// <base>_<section>.txt with a small provenance header. It returns the
// paths written.
func WriteSectionFiles(dir, baseName string, results []classify.SectionResult) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create sections dir: %w", err)
	}

	var paths []string
	for _, r := range results {
		name := fmt.Sprintf("%s_%s.txt", baseName, safeSectionName(r.Name))
		path := filepath.Join(dir, name)

		var sb strings.Builder
		fmt.Fprintf(&sb, "SECTION: %s (%s)\n", r.Name, r.ItemNumber)
		fmt.Fprintf(&sb, "SOURCE: %s\n", baseName)
		fmt.Fprintf(&sb, "WORD COUNT: %d words\n", r.WordCount)
		sb.WriteString(strings.Repeat("=", 80) + "\n\n")
		sb.WriteString(r.Content)

		if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
			return paths, fmt.Errorf("write section file: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// WriteJSONSummary saves the summary as <base>_sentiment.json.
func WriteJSONSummary(dir, baseName string, s Summary) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, baseName+"_sentiment.json")

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}
	return path, nil
}

// WriteTextSummary saves a human-readable summary as
// <base>_sentiment_summary.txt.
func WriteTextSummary(dir, baseName string, s Summary) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, baseName+"_sentiment_summary.txt")

	rule := strings.Repeat("=", 80)
	thin := strings.Repeat("-", 80)

	var sb strings.Builder
	sb.WriteString(rule + "\n")
	sb.WriteString("SENTIMENT ANALYSIS RESULTS\n")
	sb.WriteString(rule + "\n\n")
	fmt.Fprintf(&sb, "Source File: %s\n", s.SourceFile)
	fmt.Fprintf(&sb, "Analysis Date: %s\n", s.AnalysisDate)
	fmt.Fprintf(&sb, "Original Word Count: %d\n", s.OriginalWordCount)
	fmt.Fprintf(&sb, "Total Analyzed: %d\n\n", s.TotalAnalyzedWords)
	sb.WriteString(thin + "\n")
	sb.WriteString("SECTION SENTIMENT SUMMARY\n")
	sb.WriteString(thin + "\n\n")

	for _, sec := range s.Sections {
		parts := ""
		if sec.Subsections > 1 {
			parts = fmt.Sprintf(" (%d parts)", sec.Subsections)
		}
		fmt.Fprintf(&sb, "%-30s → %-10s (%d words%s)\n",
			sec.Name, strings.ToUpper(string(sec.Sentiment)), sec.WordCount, parts)
	}
	sb.WriteString("\n" + rule + "\n")

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}
	return path, nil
}

// safeSectionName makes a section name filesystem-friendly.
func safeSectionName(name string) string {
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "&", "and")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "(", "")
	name = strings.ReplaceAll(name, ")", "")
	return name
}
