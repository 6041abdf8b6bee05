// Package chunker partitions extracted sections into bounded-size
// subsections for a fixed-capacity downstream classifier.
package chunker

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dgallion1/secsent/internal/filing"
)

var paragraphBreakRe = regexp.MustCompile(`\n\s*\n+`)

// DefaultMaxWords bounds a subsection when the caller passes no limit.
const DefaultMaxWords = 2000

// Split partitions a section into subsections of at most maxWords words,
// accumulating whole paragraphs greedily. A section within the limit is
// returned unchanged as a single-element list. A single paragraph longer
// than maxWords is emitted whole: the limit is advisory, not a hard cap.
// Subsections keep the parent's item number and line range and are named
// "<name> (Part k)" in order.
func Split(sec filing.Section, maxWords int) []filing.Subsection {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	if WordCount(sec.Content) <= maxWords {
		return []filing.Subsection{sec}
	}

	paragraphs := splitParagraphs(sec.Content)

	var subs []filing.Subsection
	var current []string
	currentWords := 0

	emit := func() {
		if len(current) == 0 {
			return
		}
		subs = append(subs, filing.Subsection{
			Name:       fmt.Sprintf("%s (Part %d)", sec.Name, len(subs)+1),
			ItemNumber: sec.ItemNumber,
			Content:    strings.Join(current, "\n\n"),
			StartLine:  sec.StartLine,
			EndLine:    sec.EndLine,
		})
		current = nil
		currentWords = 0
	}

	for _, para := range paragraphs {
		words := WordCount(para)
		if currentWords+words > maxWords && len(current) > 0 {
			emit()
		}
		current = append(current, para)
		currentWords += words
	}
	emit()

	if len(subs) <= 1 {
		return []filing.Subsection{sec}
	}
	return subs
}

// splitParagraphs splits on blank-line boundaries, dropping empty blocks.
func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, block := range paragraphBreakRe.Split(text, -1) {
		block = strings.TrimSpace(block)
		if block != "" {
			paragraphs = append(paragraphs, block)
		}
	}
	return paragraphs
}
