package parser

import (
	"io"

	"github.com/dgallion1/secsent/internal/filing"
)

// TextParser handles plain text filings. SEC full-text submissions are
// already line-oriented, so the text passes through untouched: the
// segmenter's positional heuristics depend on the original line layout.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*filing.Document, error) {
	return filing.ReadDocument(r)
}
