// Package filing defines the document and section types shared by the
// extraction, cleaning, and chunking stages.
package filing

import (
	"bufio"
	"io"
	"strings"
)

// Document is an immutable SEC filing held as an ordered sequence of lines.
type Document struct {
	lines []string
}

// NewDocument builds a Document from raw filing text.
func NewDocument(text string) *Document {
	return &Document{lines: strings.Split(text, "\n")}
}

// ReadDocument builds a Document from a reader.
func ReadDocument(r io.Reader) (*Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return &Document{lines: lines}, nil
}

// Len returns the number of lines.
func (d *Document) Len() int { return len(d.lines) }

// Line returns line i. Out-of-range indices return the empty string.
func (d *Document) Line(i int) string {
	if i < 0 || i >= len(d.lines) {
		return ""
	}
	return d.lines[i]
}

// Lines returns the line range [start, end), clamped to the document.
func (d *Document) Lines(start, end int) []string {
	if start < 0 {
		start = 0
	}
	if end > len(d.lines) {
		end = len(d.lines)
	}
	if start >= end {
		return nil
	}
	return d.lines[start:end]
}

// Text returns the full document text.
func (d *Document) Text() string {
	return strings.Join(d.lines, "\n")
}

// WordCount counts whitespace-separated words in the document.
func (d *Document) WordCount() int {
	n := 0
	for _, line := range d.lines {
		n += len(strings.Fields(line))
	}
	return n
}

// Section is a named span of a filing. StartLine/EndLine are a half-open
// line range [StartLine, EndLine) into the source document; Content is the
// extracted text, exclusive of the heading line that triggered detection.
type Section struct {
	Name       string `json:"name"`
	ItemNumber string `json:"item_number"`
	Content    string `json:"content"`
	StartLine  int    `json:"start_line"`
	EndLine    int    `json:"end_line"`
}

// WordCount counts whitespace-separated words in the section content.
func (s Section) WordCount() int {
	return len(strings.Fields(s.Content))
}

// Subsection is a bounded-size part of a Section produced by the chunker.
// StartLine/EndLine are inherited from the parent section (provenance, not
// the sub-range: chunking is paragraph-based, not line-based).
type Subsection = Section

// PrioritySections lists canonical section names in analysis priority
// order: from management's own view of results down to procedural
// disclosures.
var PrioritySections = []string{
	"MD&A",
	"Results of Operations",
	"Business Overview",
	"Risk Factors",
	"Legal Proceedings",
	"Market Risk",
	"Other Information",
	"Controls and Procedures",
}
