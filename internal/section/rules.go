package section

import "regexp"

// itemMarker matches the "Item 2." heading convention anywhere in a line.
var itemMarker = regexp.MustCompile(`(?i)Item\s+(\d+[A-Z]?)\s*\.`)

// itemMarkerAtStart matches the convention only at the start of a line,
// which is what distinguishes a heading from an inline cross-reference.
var itemMarkerAtStart = regexp.MustCompile(`(?i)^Item\s+(\d+[A-Z]?)\s*\.`)

// headingRule maps a lexical window around an item marker to a canonical
// section name. Rules are checked in order; the first match wins.
type headingRule struct {
	Name     string
	Keywords []string // All must appear in the lowercased window.
	MinLine  int      // Candidate line index must exceed this (0 = no floor).
	ItemNum  string   // If set, the marker's item number must equal this.
}

// headingRules is the closed vocabulary of recognized sections. Risk
// Factors carries a line floor because in this filing convention the real
// section occurs late in the document; earlier hits are index entries.
var headingRules = []headingRule{
	{Name: "MD&A", Keywords: []string{"management", "discussion", "analysis"}},
	{Name: "Risk Factors", Keywords: []string{"risk", "factors"}, MinLine: 100},
	{Name: "Results of Operations", Keywords: []string{"results", "operations"}},
	{Name: "Business Overview", Keywords: []string{"business"}, MinLine: 50, ItemNum: "1"},
	{Name: "Market Risk", Keywords: []string{"quantitative", "qualitative", "market risk"}},
	{Name: "Legal Proceedings", Keywords: []string{"legal", "proceedings"}},
	{Name: "Controls and Procedures", Keywords: []string{"controls", "procedures"}},
	{Name: "Other Information", Keywords: []string{"other information"}, ItemNum: "5"},
}

// boundaryKeywords confirm that a forward item-marker match is a genuine
// section heading rather than an inline citation. The line after the
// marker is checked against the full set; the marker line itself only
// against boundarySelfKeywords (a heading that names its own topic).
var boundaryKeywords = []string{
	"quantitative", "controls", "legal", "proceedings", "exhibits",
	"signature", "part ii", "management", "risk factors", "business",
}

var boundarySelfKeywords = []string{
	"quantitative", "controls", "legal", "proceedings", "exhibits",
}

// MD&A content-start heuristics: filings bury the results discussion
// behind forward-looking boilerplate, so the effective content start is
// the first line that reads like actual results. Priority order is tuned
// for one filer's disclosure style and is a known limitation.
var (
	quarterSummaryRe = regexp.MustCompile(`quarter.*summary`)
	revenueGrowthRe  = regexp.MustCompile(`revenue was \$[\d.]+ billion.*up \d+%`)
	revenueUpRe      = regexp.MustCompile(`revenue was.*up \d+%`)
	revenueBillionRe = regexp.MustCompile(`revenue was \$[\d.]+ billion`)
	leadingClauseRe  = regexp.MustCompile(`(?i)^(This|The following|Refer to|See).*?\.\s*`)
	trailingNumberRe = regexp.MustCompile(`(?m)\b\d+\s*$`)
	whitespaceRunRe  = regexp.MustCompile(`\s+`)
)

const (
	tocSkipLines     = 50  // Leading block assumed title/table of contents.
	boundaryScanSkip = 20  // Forward scan offset past same-item references.
	markerTightenGap = 50  // A later discovered marker must clear this gap.
	minSpanLines     = 5   // Shorter ranges are rejected outright.
	mdaFallbackSkip  = 30  // Lines dropped when no content start is found.
	minContentChars  = 500 // Sections with less cleaned content are dropped.
)
