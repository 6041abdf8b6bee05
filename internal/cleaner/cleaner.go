// Package cleaner strips legal and administrative boilerplate from
// filing text while preserving sentiment-bearing prose. Cleaning is a
// deterministic, pure function of the input text and a fixed Options
// value; it runs on segmenter output or on whole documents.
package cleaner

import (
	"regexp"
	"strings"
)

// Options controls the cleaning pipeline.
type Options struct {
	RemoveBoilerplate     bool // Strip known administrative/legal patterns.
	ExtractSectionsOnly   bool // Pre-extract sentiment-bearing spans first.
	MinSentenceLength     int  // Sentences shorter than this are dropped.
	RemoveShortParagraphs bool // Drop short paragraphs without financial terms.
}

// DefaultOptions returns the options used by the analysis pipeline.
func DefaultOptions() Options {
	return Options{
		RemoveBoilerplate:     true,
		ExtractSectionsOnly:   false,
		MinSentenceLength:     20,
		RemoveShortParagraphs: true,
	}
}

// Cleaner removes neutral boilerplate from financial report text.
type Cleaner struct {
	opts Options
}

// New returns a Cleaner with the given options. A zero MinSentenceLength
// falls back to the default.
func New(opts Options) *Cleaner {
	if opts.MinSentenceLength <= 0 {
		opts.MinSentenceLength = 20
	}
	return &Cleaner{opts: opts}
}

// Clean runs the full pipeline. Each stage feeds the next; empty input
// yields empty output and no stage ever fails.
func (c *Cleaner) Clean(text string) string {
	if c.opts.ExtractSectionsOnly {
		text = c.extractSentimentSections(text)
	}
	if c.opts.RemoveBoilerplate {
		text = removeBoilerplate(text)
	}
	text = cleanFormatting(text)
	text = c.filterSentences(text)
	if c.opts.RemoveShortParagraphs {
		text = removeShortContent(text)
	}
	return strings.TrimSpace(text)
}

// extractSentimentSections keeps only spans following sentiment-bearing
// sub-headings, each running until the next top-level item marker. When
// nothing matches the whole text passes through unchanged.
func (c *Cleaner) extractSentimentSections(text string) string {
	var sections []string
	var current []string
	inSection := false

	for _, line := range strings.Split(text, "\n") {
		if matchesAny(line, sentimentSectionPatterns) {
			if len(current) > 0 {
				sections = append(sections, strings.Join(current, "\n"))
			}
			current = []string{line}
			inSection = true
			continue
		}
		if inSection {
			if topLevelItemRe.MatchString(line) {
				if len(current) > 0 {
					sections = append(sections, strings.Join(current, "\n"))
				}
				current = nil
				inSection = false
			} else {
				current = append(current, line)
			}
		}
	}
	if len(current) > 0 {
		sections = append(sections, strings.Join(current, "\n"))
	}

	if len(sections) == 0 {
		return text
	}
	return strings.Join(sections, "\n\n")
}

func removeBoilerplate(text string) string {
	for _, re := range boilerplatePatterns {
		text = re.ReplaceAllString(text, "")
	}
	return text
}

func cleanFormatting(text string) string {
	text = whitespaceRunRe.ReplaceAllString(text, " ")
	text = newlineRunRe.ReplaceAllString(text, "\n\n")
	text = punctuationLineRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// filterSentences splits the text into sentence-like units and drops the
// low-value ones: short fragments, exact duplicates (after case and
// punctuation normalization), neutral boilerplate without financial
// content, citation-dominated sentences, short cross-references, and bare
// structural labels. Survivors are rejoined with ". ".
func (c *Cleaner) filterSentences(text string) string {
	sentences := sentenceSplitRe.Split(text, -1)
	var kept []string
	seen := make(map[string]struct{})

	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) < c.opts.MinSentenceLength {
			continue
		}
		lower := strings.ToLower(sentence)

		normalized := punctuationRe.ReplaceAllString(lower, "")
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}

		if containsAnyPhrase(lower, neutralPhrases) && !financialContentRe.MatchString(sentence) {
			continue
		}

		if citationRe.MatchString(sentence) {
			digits := len(digitGroupRe.FindAllString(sentence, -1))
			if digits > 3 && len(strings.Fields(sentence)) < 15 {
				continue
			}
		}

		if crossReferenceRe.MatchString(lower) && len(strings.Fields(sentence)) < 10 {
			continue
		}

		if structuralLabelRe.MatchString(lower) && len(strings.Fields(sentence)) < 5 {
			continue
		}

		kept = append(kept, sentence)
	}

	return strings.Join(kept, ". ")
}

// removeShortContent drops paragraphs under 50 characters unless they
// contain a financial keyword.
func removeShortContent(text string) string {
	var kept []string
	for _, para := range paragraphBreakRe.Split(text, -1) {
		para = strings.TrimSpace(para)
		if len(para) >= 50 || financialKeywordRe.MatchString(para) {
			kept = append(kept, para)
		}
	}
	return strings.Join(kept, "\n\n")
}

// ExtractSentences cleans the text and re-splits it into sentences of at
// least minLength characters, dropping any that still carry a neutral
// phrase. Unlike Clean, the neutral-phrase check here has no financial-
// content exception.
func (c *Cleaner) ExtractSentences(text string, minLength int) []string {
	cleaned := c.Clean(text)
	var out []string
	for _, sent := range sentenceSplitRe.Split(cleaned, -1) {
		sent = strings.TrimSpace(sent)
		if len(sent) < minLength {
			continue
		}
		if containsAnyPhrase(strings.ToLower(sent), neutralPhrases) {
			continue
		}
		out = append(out, sent)
	}
	return out
}

// defaultSegmentSentenceLength is the sentence floor used when packing
// classifier segments.
const defaultSegmentSentenceLength = 30

// SentimentSegments greedily packs cleaned sentences into segments not
// exceeding maxLength characters, starting a new segment whenever adding
// the next sentence would overflow. A sentence is never split.
func (c *Cleaner) SentimentSegments(text string, maxLength int) []string {
	cleaned := c.Clean(text)
	sentences := c.ExtractSentences(cleaned, defaultSegmentSentenceLength)

	var segments []string
	var current []string
	currentLen := 0

	for _, sentence := range sentences {
		if currentLen+len(sentence) > maxLength && len(current) > 0 {
			segments = append(segments, strings.Join(current, " "))
			current = []string{sentence}
			currentLen = len(sentence)
			continue
		}
		current = append(current, sentence)
		currentLen += len(sentence) + 1
	}
	if len(current) > 0 {
		segments = append(segments, strings.Join(current, " "))
	}
	return segments
}

func matchesAny(s string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

func containsAnyPhrase(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
