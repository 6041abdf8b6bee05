// Command fetchfred pulls economic series from the FRED API, labels each
// observation by its change from the prior period, and writes CSV or JSON.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dgallion1/secsent/internal/config"
	"github.com/dgallion1/secsent/internal/fred"
	"github.com/joho/godotenv"
)

func main() {
	var (
		search    = flag.String("search", "", "search for series matching this text and exit")
		seriesID  = flag.String("series", "", "series ID to fetch, e.g. UNRATE or GDP")
		startDate = flag.String("start", "", "observation start date (YYYY-MM-DD)")
		endDate   = flag.String("end", "", "observation end date (YYYY-MM-DD)")
		frequency = flag.String("frequency", "", "aggregation frequency: d, w, m, q, or a")
		maxRows   = flag.Int("max", 0, "maximum number of observations (0 = no limit)")
		format    = flag.String("format", "csv", "output format: csv or json")
		outPath   = flag.String("out", "", "output file (default stdout)")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.FREDAPIKey == "" {
		fmt.Fprintln(os.Stderr, "FRED_API_KEY must be set")
		os.Exit(1)
	}
	if *search == "" && *seriesID == "" {
		fmt.Fprintln(os.Stderr, "usage: fetchfred -search TEXT | -series ID [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	ctx := context.Background()
	client := fred.NewClient(cfg.FREDBaseURL, cfg.FREDAPIKey)
	defer client.Close()

	if *search != "" {
		series, err := client.SearchSeries(ctx, *search, 20)
		if err != nil {
			fmt.Fprintln(os.Stderr, "search:", err)
			os.Exit(1)
		}
		for _, s := range series {
			fmt.Printf("%-20s %s (%s, %s)\n", s.ID, s.Title, s.Frequency, s.Units)
		}
		return
	}

	info, err := client.SeriesInfo(ctx, *seriesID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "series info:", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "%s: %s (%s, %s)\n", info.ID, info.Title, info.Frequency, info.Units)

	obs, err := client.Observations(ctx, fred.ObservationRequest{
		SeriesID:  *seriesID,
		StartDate: *startDate,
		EndDate:   *endDate,
		Frequency: *frequency,
		MaxRows:   *maxRows,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "observations:", err)
		os.Exit(1)
	}
	fred.LabelObservations(obs)

	var w io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "create output:", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	switch *format {
	case "csv":
		err = fred.WriteCSV(w, obs)
	case "json":
		err = fred.WriteJSON(w, *seriesID, obs)
	default:
		fmt.Fprintf(os.Stderr, "unknown format %q\n", *format)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "write output:", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "wrote %d observations\n", len(obs))
}
