// Package section locates named disclosure sections inside an
// unstructured SEC filing using positional and lexical heuristics.
package section

import (
	"strings"

	"github.com/dgallion1/secsent/internal/filing"
)

// Extractor scans filings for item-marker headings and resolves them into
// non-overlapping section spans. The zero value is ready to use; it holds
// no state across calls.
type Extractor struct{}

// NewExtractor returns an Extractor.
func NewExtractor() *Extractor { return &Extractor{} }

// marker is a discovered candidate heading.
type marker struct {
	line    int
	name    string
	itemNum string // e.g. "Item 2"
}

// ExtractSections extracts a mapping from canonical section name to the
// section span. Malformed or unstructured input yields an empty map, never
// an error; callers should fall back to whole-document processing.
func (e *Extractor) ExtractSections(doc *filing.Document) map[string]filing.Section {
	sections := make(map[string]filing.Section)
	if doc == nil || doc.Len() == 0 {
		return sections
	}

	markers := e.discoverMarkers(doc)

	// Resolve boundaries in discovery order, tracking accepted ranges to
	// clip or drop overlapping candidates.
	type span struct{ start, end int }
	var used []span

	for idx, m := range markers {
		endLine := e.findBoundary(doc, m)

		// A later independently discovered heading supersedes the forward
		// scan when it yields an earlier end, guarding against overshoot
		// past an intervening recognized section. It must sit well after
		// the start so table-of-contents entries cannot truncate us.
		if idx+1 < len(markers) {
			next := markers[idx+1].line
			if next < endLine && next > m.line+markerTightenGap {
				endLine = next
			}
		}

		// Overlap resolution: earlier-registered ranges win. A candidate
		// starting before an accepted range is clipped to it; one starting
		// inside an accepted range is dropped.
		for _, u := range used {
			if m.line < u.end && endLine > u.start {
				if m.line < u.start {
					if u.start < endLine {
						endLine = u.start
					}
				} else {
					endLine = m.line
					break
				}
			}
		}

		if endLine <= m.line+minSpanLines {
			continue
		}
		used = append(used, span{start: m.line, end: endLine})

		// Content excludes the heading line itself.
		lines := doc.Lines(m.line+1, endLine)
		if m.name == "MD&A" {
			lines = trimMDAPreamble(lines)
		}

		content := cleanSectionContent(strings.Join(lines, "\n"))
		if len(content) <= minContentChars {
			continue
		}

		// The same canonical name can surface from multiple candidates;
		// the longer content wins.
		if prev, ok := sections[m.name]; ok && len(prev.Content) >= len(content) {
			continue
		}
		sections[m.name] = filing.Section{
			Name:       m.name,
			ItemNumber: m.itemNum,
			Content:    content,
			StartLine:  m.line,
			EndLine:    endLine,
		}
	}

	return sections
}

// discoverMarkers scans for candidate headings, skipping the leading
// title/table-of-contents block.
func (e *Extractor) discoverMarkers(doc *filing.Document) []marker {
	var markers []marker
	for i := tocSkipLines; i < doc.Len(); i++ {
		m := itemMarker.FindStringSubmatch(doc.Line(i))
		if m == nil {
			continue
		}
		itemNum := m[1]

		// Lexical window: the heading line plus the following two lines.
		window := strings.ToLower(strings.Join(doc.Lines(i, i+3), " "))

		for _, rule := range headingRules {
			if rule.MinLine > 0 && i <= rule.MinLine {
				continue
			}
			if rule.ItemNum != "" && !strings.EqualFold(itemNum, rule.ItemNum) {
				continue
			}
			if !containsAll(window, rule.Keywords) {
				continue
			}
			markers = append(markers, marker{line: i, name: rule.Name, itemNum: "Item " + itemNum})
			break
		}
	}
	return markers
}

// findBoundary searches forward for the next line that begins a genuine
// new section. The scan starts past a skip window so in-text references
// to the current item do not terminate it early. A match counts only if
// it or its following line carries a known section-header keyword.
func (e *Extractor) findBoundary(doc *filing.Document, m marker) int {
	currentNum := strings.TrimPrefix(m.itemNum, "Item ")

	for j := m.line + boundaryScanSkip; j < doc.Len(); j++ {
		line := strings.TrimSpace(doc.Line(j))
		sub := itemMarkerAtStart.FindStringSubmatch(line)
		if sub == nil {
			continue
		}
		nextNum := sub[1]
		if strings.EqualFold(nextNum, currentNum) {
			continue
		}
		// MD&A prose routinely cross-references Item 1A risk factors;
		// those markers are citations, not boundaries.
		if m.name == "MD&A" && strings.EqualFold(nextNum, "1A") {
			continue
		}

		if containsAny(strings.ToLower(doc.Line(j+1)), boundaryKeywords) {
			return j
		}
		if containsAny(strings.ToLower(line), boundarySelfKeywords) {
			return j
		}
	}
	return doc.Len()
}

// trimMDAPreamble advances the MD&A content start past forward-looking
// boilerplate to the first line that reads like actual results. When no
// such line is found the fixed-size preamble is dropped instead.
func trimMDAPreamble(lines []string) []string {
	contentStart := 0
	for j, line := range lines {
		lower := strings.ToLower(line)

		if quarterSummaryRe.MatchString(lower) {
			contentStart = j
			break
		}
		if revenueGrowthRe.MatchString(lower) {
			contentStart = j
			break
		}
		if revenueUpRe.MatchString(lower) && strings.Contains(lower, "$") {
			contentStart = j
			break
		}
		if revenueBillionRe.MatchString(lower) &&
			!strings.Contains(lower, "could") &&
			!strings.Contains(lower, "may") &&
			!strings.Contains(lower, "risk") {
			contentStart = j
			break
		}
	}

	if contentStart > 0 {
		return lines[contentStart:]
	}
	if len(lines) > mdaFallbackSkip {
		return lines[mdaFallbackSkip:]
	}
	return lines
}

// cleanSectionContent normalizes whitespace and strips a single leading
// boilerplate clause and trailing bare page numbers.
func cleanSectionContent(content string) string {
	content = whitespaceRunRe.ReplaceAllString(content, " ")
	content = leadingClauseRe.ReplaceAllString(content, "")
	content = trailingNumberRe.ReplaceAllString(content, "")
	return strings.TrimSpace(content)
}

func containsAll(s string, keywords []string) bool {
	for _, k := range keywords {
		if !strings.Contains(s, k) {
			return false
		}
	}
	return true
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
