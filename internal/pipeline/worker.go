package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgallion1/secsent/internal/parser"
	"github.com/dgallion1/secsent/internal/report"
)

// Worker processes a single filing analysis job.
type Worker struct {
	analyzer *Analyzer
	log      *slog.Logger
}

func NewWorker(analyzer *Analyzer, log *slog.Logger) *Worker {
	return &Worker{analyzer: analyzer, log: log}
}

// Process runs the full analysis pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	job.SetStatus(StatusParsing, "parsing")
	data := job.FileData()
	if err := ValidateText(data); err != nil {
		log.Error("input rejected", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	p, err := parser.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	doc, err := p.Parse(bytes.NewReader(data), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	job.SetStatus(StatusSegmenting, "segmenting")
	trace := &Trace{
		SectionsFound: func(n int) {
			job.SetSectionsFound(n)
			job.SetStatus(StatusClassifying, "classifying")
		},
		TotalChunks: job.SetTotalChunks,
		ChunkDone:   job.IncrChunksProcessed,
	}

	results, err := w.analyzer.AnalyzeDocument(ctx, doc, trace)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			log.Error("input rejected", "error", err)
		} else {
			log.Error("analysis failed", "error", err)
		}
		job.AddError(err.Error())
		if len(results) == 0 {
			job.SetStatus(StatusFailed, "classifying")
			return
		}
	}
	if len(results) == 0 {
		log.Warn("no classifiable content")
		job.AddError("no classifiable content")
		job.SetStatus(StatusFailed, "classifying")
		return
	}

	summary := report.BuildSummary(job.Filename, doc.WordCount(), results)
	job.SetResults(results, summary)

	snap := job.Snapshot()
	if len(snap.Progress.Errors) > 0 {
		job.SetStatus(StatusPartial, "done")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}
	log.Info("analysis complete",
		"sections", len(results),
		"analyzed_words", summary.TotalAnalyzedWords,
		"original_words", summary.OriginalWordCount,
	)
}
