package section

import (
	"sort"
	"strings"
	"testing"

	"github.com/dgallion1/secsent/internal/filing"
)

// buildFiling assembles a synthetic 10-Q shaped document: a table of
// contents inside the skipped leading block, an MD&A section with a
// forward-looking preamble, then market risk and controls sections.
func buildFiling() *filing.Document {
	lines := make([]string, 320)

	lines[5] = "TABLE OF CONTENTS"
	lines[6] = "Item 2. Management's Discussion and Analysis of Financial Condition .... 24"
	lines[7] = "Item 3. Quantitative and Qualitative Disclosures About Market Risk ..... 38"
	lines[8] = "Item 4. Controls and Procedures ......................................... 40"

	for i := 20; i < 110; i++ {
		lines[i] = "Unaudited condensed consolidated interim statements continue here."
	}

	lines[120] = "Item 2. Management's Discussion and Analysis of Financial Condition"
	lines[122] = "Statements in this report that are not historical are forward-looking."
	lines[123] = "Actual outcomes depend on factors outside our control."
	lines[125] = "Revenue was $15 billion, up 50% from a year ago on data center strength."
	for i := 126; i < 170; i++ {
		lines[i] = "Gross margin improved to 45% driven by higher data center volume."
	}
	for i := 170; i < 198; i++ {
		lines[i] = "Operating expenses grew 12% on headcount and infrastructure costs."
	}

	lines[200] = "Item 3. Quantitative and Qualitative Disclosures About Market Risk"
	for i := 201; i < 240; i++ {
		lines[i] = "Our investment portfolio is exposed to interest rate movements."
	}

	lines[260] = "Item 4. Controls and Procedures"
	for i := 261; i < 310; i++ {
		lines[i] = "Our disclosure controls were evaluated as of the end of the period."
	}

	return filing.NewDocument(strings.Join(lines, "\n"))
}

func TestExtractSections_FindsKnownSections(t *testing.T) {
	sections := NewExtractor().ExtractSections(buildFiling())

	for _, name := range []string{"MD&A", "Market Risk", "Controls and Procedures"} {
		if _, ok := sections[name]; !ok {
			t.Errorf("expected section %q, got %v", name, keys(sections))
		}
	}

	mda, ok := sections["MD&A"]
	if !ok {
		t.Fatal("MD&A missing")
	}
	if mda.ItemNumber != "Item 2" {
		t.Errorf("expected item number %q, got %q", "Item 2", mda.ItemNumber)
	}
	if mda.StartLine != 120 {
		t.Errorf("expected MD&A to start at line 120, got %d", mda.StartLine)
	}
	if mda.EndLine != 200 {
		t.Errorf("expected MD&A to end at the Item 3 heading (line 200), got %d", mda.EndLine)
	}
}

func TestExtractSections_MDAPreambleTrimmed(t *testing.T) {
	sections := NewExtractor().ExtractSections(buildFiling())
	mda, ok := sections["MD&A"]
	if !ok {
		t.Fatal("MD&A missing")
	}

	if !strings.HasPrefix(mda.Content, "Revenue was $15 billion, up 50%") {
		t.Errorf("expected content to start at the results summary, got %q", head(mda.Content, 80))
	}
	if strings.Contains(mda.Content, "forward-looking") {
		t.Errorf("expected forward-looking preamble to be trimmed")
	}
}

func TestExtractSections_TOCEntriesIgnored(t *testing.T) {
	sections := NewExtractor().ExtractSections(buildFiling())
	for name, sec := range sections {
		if sec.StartLine < 50 {
			t.Errorf("section %q anchored inside the table of contents at line %d", name, sec.StartLine)
		}
	}
}

func TestExtractSections_NoOverlap(t *testing.T) {
	sections := NewExtractor().ExtractSections(buildFiling())
	if len(sections) < 2 {
		t.Fatalf("expected multiple sections, got %d", len(sections))
	}

	ordered := make([]filing.Section, 0, len(sections))
	for _, sec := range sections {
		ordered = append(ordered, sec)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].StartLine < ordered[j].StartLine })

	for i := 1; i < len(ordered); i++ {
		prev, cur := ordered[i-1], ordered[i]
		if cur.StartLine < prev.EndLine {
			t.Errorf("sections %q (%d-%d) and %q (%d-%d) overlap",
				prev.Name, prev.StartLine, prev.EndLine, cur.Name, cur.StartLine, cur.EndLine)
		}
	}
}

func TestExtractSections_EmptyAndMalformedInput(t *testing.T) {
	ex := NewExtractor()

	if got := ex.ExtractSections(nil); len(got) != 0 {
		t.Errorf("nil document: expected no sections, got %d", len(got))
	}
	if got := ex.ExtractSections(filing.NewDocument("")); len(got) != 0 {
		t.Errorf("empty document: expected no sections, got %d", len(got))
	}

	prose := strings.Repeat("Plain narrative text with no headings whatsoever.\n", 200)
	if got := ex.ExtractSections(filing.NewDocument(prose)); len(got) != 0 {
		t.Errorf("unstructured document: expected no sections, got %d", len(got))
	}
}

func TestExtractSections_ShortSectionsDropped(t *testing.T) {
	// A heading immediately followed by another leaves too little content.
	lines := make([]string, 140)
	for i := 0; i < 100; i++ {
		lines[i] = "Filler narrative text."
	}
	lines[110] = "Item 4. Controls and Procedures"
	lines[112] = "Item 6. Exhibits"

	sections := NewExtractor().ExtractSections(filing.NewDocument(strings.Join(lines, "\n")))
	if _, ok := sections["Controls and Procedures"]; ok {
		t.Error("expected a near-empty section to be rejected")
	}
}

func TestCleanSectionContent(t *testing.T) {
	in := "See Item 1A for context. Revenue    grew\n\n10% over the prior\nperiod 42"
	got := cleanSectionContent(in)
	want := "Revenue grew 10% over the prior period"
	if got != want {
		t.Errorf("cleanSectionContent() = %q, want %q", got, want)
	}
}

func keys(m map[string]filing.Section) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
