// Command analyze runs the filing analysis pipeline against local files or
// filings fetched from EDGAR, and writes sentiment reports to an output
// directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/secsent/internal/classify"
	"github.com/dgallion1/secsent/internal/cleaner"
	"github.com/dgallion1/secsent/internal/config"
	"github.com/dgallion1/secsent/internal/edgar"
	"github.com/dgallion1/secsent/internal/filing"
	"github.com/dgallion1/secsent/internal/parser"
	"github.com/dgallion1/secsent/internal/pipeline"
	"github.com/dgallion1/secsent/internal/report"
	"github.com/joho/godotenv"
)

func main() {
	var (
		ticker       = flag.String("ticker", "", "fetch the latest filing for this ticker from EDGAR instead of reading local files")
		form         = flag.String("form", "10-K", "filing form type when fetching from EDGAR")
		startDate    = flag.String("start", "", "earliest filing date (YYYY-MM-DD) when fetching from EDGAR")
		endDate      = flag.String("end", "", "latest filing date (YYYY-MM-DD) when fetching from EDGAR")
		outDir       = flag.String("out", "analysis", "output directory for reports")
		sectionFiles = flag.Bool("sections", false, "also write each section's text to its own file")
		verbose      = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	_ = godotenv.Load()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := config.Load()
	if cfg.ClassifierURL == "" {
		fmt.Fprintln(os.Stderr, "CLASSIFIER_URL must be set")
		os.Exit(1)
	}
	if *ticker == "" && flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: analyze [flags] file...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	ctx := context.Background()

	classifier := classify.NewClient(cfg.ClassifierURL)
	defer classifier.Close()

	cleanOpts := cleaner.DefaultOptions()
	cleanOpts.MinSentenceLength = cfg.MinSentenceLength
	analyzer := pipeline.NewAnalyzer(classifier, log, cleanOpts, cfg.MaxSectionWords, cfg.MaxConcurrentClassify)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Error("create output directory", "error", err)
		os.Exit(1)
	}

	failed := 0
	if *ticker != "" {
		name, doc, err := fetchFiling(ctx, cfg, log, *ticker, *form, *startDate, *endDate)
		if err != nil {
			log.Error("fetch filing", "ticker", *ticker, "error", err)
			os.Exit(1)
		}
		if err := analyzeOne(ctx, analyzer, log, name, doc, *outDir, *sectionFiles); err != nil {
			log.Error("analyze", "file", name, "error", err)
			failed++
		}
	}
	for _, path := range flag.Args() {
		doc, err := parseFile(path)
		if err != nil {
			log.Error("parse", "file", path, "error", err)
			failed++
			continue
		}
		if err := analyzeOne(ctx, analyzer, log, filepath.Base(path), doc, *outDir, *sectionFiles); err != nil {
			log.Error("analyze", "file", path, "error", err)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func parseFile(path string) (*filing.Document, error) {
	p, err := parser.ForFile(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.Parse(f, filepath.Base(path))
}

// fetchFiling downloads the most recent matching filing from EDGAR and
// converts it to a plain-text document.
func fetchFiling(ctx context.Context, cfg config.Config, log *slog.Logger, ticker, form, start, end string) (string, *filing.Document, error) {
	client := edgar.NewClient(cfg.EdgarUserAgent)
	defer client.Close()

	cik, err := client.LookupCIK(ctx, ticker)
	if err != nil {
		return "", nil, err
	}
	filings, err := client.ListFilings(ctx, cik, form, start, end)
	if err != nil {
		return "", nil, err
	}
	if len(filings) == 0 {
		return "", nil, fmt.Errorf("no %s filings found for %s", form, ticker)
	}

	f := filings[0]
	log.Info("fetching filing", "ticker", ticker, "form", f.Form, "date", f.FilingDate, "document", f.PrimaryDocument)
	raw, err := client.FetchDocument(ctx, cik, f)
	if err != nil {
		return "", nil, err
	}
	text, err := edgar.ExtractText(raw)
	if err != nil {
		return "", nil, err
	}

	name := fmt.Sprintf("%s_%s_%s.txt", strings.ToUpper(ticker), f.Form, f.FilingDate)
	return name, filing.NewDocument(text), nil
}

func analyzeOne(ctx context.Context, analyzer *pipeline.Analyzer, log *slog.Logger, name string, doc *filing.Document, outDir string, sectionFiles bool) error {
	log.Info("analyzing", "file", name, "lines", doc.Len(), "words", doc.WordCount())

	results, err := analyzer.AnalyzeDocument(ctx, doc, nil)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no sections produced results")
	}

	summary := report.BuildSummary(name, doc.WordCount(), results)
	printSummary(summary)

	base := strings.TrimSuffix(name, filepath.Ext(name))
	jsonPath, err := report.WriteJSONSummary(outDir, base, summary)
	if err != nil {
		return err
	}
	textPath, err := report.WriteTextSummary(outDir, base, summary)
	if err != nil {
		return err
	}
	log.Info("reports written", "json", jsonPath, "summary", textPath)

	if sectionFiles {
		paths, err := report.WriteSectionFiles(outDir, base, results)
		if err != nil {
			return err
		}
		log.Info("section files written", "count", len(paths))
	}
	return nil
}

func printSummary(s report.Summary) {
	fmt.Printf("\n%s\n", s.SourceFile)
	for _, sec := range s.Sections {
		label := sec.Name
		if sec.ItemNumber != "" {
			label = fmt.Sprintf("%s (%s)", sec.Name, sec.ItemNumber)
		}
		fmt.Printf("  %-45s %-10s %d words\n", label, sec.Sentiment, sec.WordCount)
	}
	fmt.Printf("  analyzed %d of %d words\n", s.TotalAnalyzedWords, s.OriginalWordCount)
}
