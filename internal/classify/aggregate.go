package classify

// ChunkResult is the labeled outcome for one cleaned subsection.
type ChunkResult struct {
	Label     Label  `json:"label"`
	WordCount int    `json:"word_count"`
	Content   string `json:"-"`
}

// SectionResult aggregates the chunk results of one section.
type SectionResult struct {
	Name        string        `json:"name"`
	ItemNumber  string        `json:"item_number"`
	Label       Label         `json:"sentiment"`
	WordCount   int           `json:"word_count"`
	Subsections int           `json:"subsections"`
	Chunks      []ChunkResult `json:"-"`
	Content     string        `json:"-"`
}

// AggregateSection reduces chunk results to a section result. The section
// label is the label of the largest chunk by word count, which weights
// the verdict toward the bulk of the section's prose.
func AggregateSection(name, itemNumber string, chunks []ChunkResult) SectionResult {
	res := SectionResult{
		Name:        name,
		ItemNumber:  itemNumber,
		Label:       Neutral,
		Subsections: len(chunks),
		Chunks:      chunks,
	}
	if len(chunks) == 0 {
		return res
	}

	maxIdx := 0
	content := ""
	for i, ch := range chunks {
		res.WordCount += ch.WordCount
		if ch.WordCount > chunks[maxIdx].WordCount {
			maxIdx = i
		}
		if content != "" {
			content += " "
		}
		content += ch.Content
	}
	res.Label = chunks[maxIdx].Label
	res.Content = content
	return res
}
