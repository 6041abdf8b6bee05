package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgallion1/secsent/internal/chunker"
	"github.com/dgallion1/secsent/internal/classify"
	"github.com/dgallion1/secsent/internal/cleaner"
	"github.com/dgallion1/secsent/internal/filing"
	"github.com/dgallion1/secsent/internal/section"
)

// ValidationError reports caller misuse: input that is not filing text.
// Malformed but textual filings never produce it — they just yield fewer
// sections.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + e.Reason
}

const (
	// minCleanedChars drops chunks that carry nothing after cleaning.
	minCleanedChars = 50
	// maxCleanedChars bounds what is sent to the classifier; longer
	// chunks are cut at the last sentence break past truncationFloor.
	maxCleanedChars = 3000
	truncationFloor = 1500
)

// Trace reports analysis progress. All fields are optional.
type Trace struct {
	SectionsFound func(n int)
	TotalChunks   func(n int)
	ChunkDone     func()
}

func (t *Trace) sectionsFound(n int) {
	if t != nil && t.SectionsFound != nil {
		t.SectionsFound(n)
	}
}

func (t *Trace) totalChunks(n int) {
	if t != nil && t.TotalChunks != nil {
		t.TotalChunks(n)
	}
}

func (t *Trace) chunkDone() {
	if t != nil && t.ChunkDone != nil {
		t.ChunkDone()
	}
}

// Analyzer runs the segment → clean → chunk → classify sequence for one
// filing. It is safe for concurrent use: all core stages are pure and the
// classifier client is concurrency-safe.
type Analyzer struct {
	classifier      *classify.Client
	extractor       *section.Extractor
	log             *slog.Logger
	cleanOpts       cleaner.Options
	maxSectionWords int
	maxConcurrent   int
}

// NewAnalyzer wires an Analyzer.
func NewAnalyzer(classifier *classify.Client, log *slog.Logger, cleanOpts cleaner.Options, maxSectionWords, maxConcurrent int) *Analyzer {
	if maxSectionWords <= 0 {
		maxSectionWords = chunker.DefaultMaxWords
	}
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &Analyzer{
		classifier:      classifier,
		extractor:       section.NewExtractor(),
		log:             log,
		cleanOpts:       cleanOpts,
		maxSectionWords: maxSectionWords,
		maxConcurrent:   maxConcurrent,
	}
}

// ValidateInput rejects non-text input before any parsing happens.
func ValidateInput(data []byte) error {
	if len(data) == 0 {
		return &ValidationError{Reason: "empty input"}
	}
	return nil
}

// ValidateText rejects parsed content that is not text.
func ValidateText(data []byte) error {
	if err := ValidateInput(data); err != nil {
		return err
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return &ValidationError{Reason: "binary content"}
	}
	return nil
}

// AnalyzeDocument segments the filing, cleans and chunks each section,
// classifies every chunk, and aggregates per-section results in priority
// order. When no sections are recognized it falls back to whole-document
// analysis. Partial results are valid: a section whose chunks all fail
// classification is skipped, not fatal.
func (a *Analyzer) AnalyzeDocument(ctx context.Context, doc *filing.Document, trace *Trace) ([]classify.SectionResult, error) {
	if doc == nil {
		return nil, &ValidationError{Reason: "nil document"}
	}

	sections := a.extractor.ExtractSections(doc)
	trace.sectionsFound(len(sections))

	if len(sections) == 0 {
		a.log.Warn("no sections recognized, falling back to whole-document analysis")
		return a.analyzeWholeDocument(ctx, doc, trace)
	}

	// Chunk every section up front so progress totals are known.
	type sectionChunks struct {
		sec    filing.Section
		chunks []filing.Subsection
	}
	var planned []sectionChunks
	totalChunks := 0
	for _, name := range filing.PrioritySections {
		sec, ok := sections[name]
		if !ok {
			continue
		}
		chunks := chunker.Split(sec, a.maxSectionWords)
		planned = append(planned, sectionChunks{sec: sec, chunks: chunks})
		totalChunks += len(chunks)
	}
	trace.totalChunks(totalChunks)

	clean := cleaner.New(a.cleanOpts)

	var results []classify.SectionResult
	for _, p := range planned {
		chunkResults, err := a.classifyChunks(ctx, clean, p.chunks, trace)
		if err != nil {
			return results, err
		}
		if len(chunkResults) == 0 {
			a.log.Warn("section dropped, no classifiable content", "section", p.sec.Name)
			continue
		}
		res := classify.AggregateSection(p.sec.Name, p.sec.ItemNumber, chunkResults)
		res.Subsections = len(p.chunks)
		results = append(results, res)
		a.log.Info("section classified",
			"section", p.sec.Name,
			"sentiment", res.Label,
			"words", res.WordCount,
			"parts", res.Subsections,
		)
	}
	return results, nil
}

// analyzeWholeDocument cleans the entire filing with section
// pre-extraction enabled and classifies it as one unit.
func (a *Analyzer) analyzeWholeDocument(ctx context.Context, doc *filing.Document, trace *Trace) ([]classify.SectionResult, error) {
	opts := a.cleanOpts
	opts.ExtractSectionsOnly = true
	clean := cleaner.New(opts)

	cleaned := clean.Clean(doc.Text())
	if len(strings.TrimSpace(cleaned)) < minCleanedChars {
		return nil, nil
	}
	cleaned = truncateAtSentence(cleaned, maxCleanedChars)

	trace.totalChunks(1)
	label, err := a.classifyWithRetry(ctx, cleaned)
	trace.chunkDone()
	if err != nil {
		return nil, fmt.Errorf("classify document: %w", err)
	}

	res := classify.AggregateSection("Document", "", []classify.ChunkResult{{
		Label:     label,
		WordCount: chunker.WordCount(cleaned),
		Content:   cleaned,
	}})
	return []classify.SectionResult{res}, nil
}

// classifyChunks cleans and classifies a section's chunks with bounded
// concurrency, preserving chunk order. Chunks that fail or clean down to
// nothing are dropped; a context error aborts.
func (a *Analyzer) classifyChunks(ctx context.Context, clean *cleaner.Cleaner, chunks []filing.Subsection, trace *Trace) ([]classify.ChunkResult, error) {
	type slot struct {
		res classify.ChunkResult
		ok  bool
		err error
	}
	slots := make([]slot, len(chunks))
	sem := make(chan struct{}, a.maxConcurrent)
	done := make(chan int, len(chunks))

	for i, chunk := range chunks {
		sem <- struct{}{}
		go func(i int, chunk filing.Subsection) {
			defer func() { <-sem }()
			defer func() { done <- i }()

			cleaned := clean.Clean(chunk.Content)
			if len(strings.TrimSpace(cleaned)) < minCleanedChars {
				return
			}
			cleaned = truncateAtSentence(cleaned, maxCleanedChars)

			label, err := a.classifyWithRetry(ctx, cleaned)
			if err != nil {
				slots[i].err = err
				return
			}
			slots[i] = slot{
				res: classify.ChunkResult{
					Label:     label,
					WordCount: chunker.WordCount(cleaned),
					Content:   cleaned,
				},
				ok: true,
			}
		}(i, chunk)
	}

	for range chunks {
		<-done
		trace.chunkDone()
	}

	var out []classify.ChunkResult
	for i, s := range slots {
		if s.err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			a.log.Error("chunk classification failed", "chunk", i, "error", s.err)
			continue
		}
		if s.ok {
			out = append(out, s.res)
		}
	}
	return out, nil
}

func (a *Analyzer) classifyWithRetry(ctx context.Context, text string) (classify.Label, error) {
	var label classify.Label
	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		label, lastErr = a.classifier.Classify(ctx, text)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		a.log.Warn("retryable classifier error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return label, lastErr
}

// truncateAtSentence cuts text at the last complete sentence before max
// characters, but only when that leaves substantial content.
func truncateAtSentence(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := text[:max]
	last := strings.LastIndex(cut, ". ")
	for _, sep := range []string{".\n", "! ", "? "} {
		if idx := strings.LastIndex(cut, sep); idx > last {
			last = idx
		}
	}
	if last > truncationFloor {
		return text[:last+1]
	}
	return text
}
