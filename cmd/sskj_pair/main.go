// Command sskj-pair pairs the Slovenian and English exports of the dictionary
// entry by entry, keyed by the headword link, and writes the pairs as JSON
// and/or into a SQLite database.
//
// Usage:
//
//	sskj-pair --slo si_sskj.html --eng en_sskj.html --json paired_entries.json
//	sskj-pair --slo si_sskj.html --eng en_sskj.html --sqlite pairs.db
//
// Without --json or --sqlite the JSON is written to stdout.
//
// When the two exports drift apart, the pairs found before the first
// mismatch are still written and the command exits with code 1.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"sskj/internal/htmlio"
	"sskj/internal/logging"
	"sskj/internal/pairing"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run returns a Unix-style exit code:
//   - 0 for success
//   - 2 for usage/config errors
//   - 1 for operational/runtime errors, including a pairing mismatch
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("sskj-pair", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	sloPath := fs.String("slo", "", "Slovenian export (HTML)")
	engPath := fs.String("eng", "", "English export (HTML)")
	jsonPath := fs.String("json", "", "Write pairs as JSON to this file")
	dsn := fs.String("sqlite", "", "Store pairs in this SQLite database")
	verbose := fs.BoolP("verbose", "v", false, "Enable debug logs")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *sloPath == "" || *engPath == "" {
		fmt.Fprintf(stderr, "missing --slo or --eng\n")
		return 2
	}

	log := logging.New(stderr, *verbose)
	defer func() { _ = log.Sync() }()

	slo, err := loadEntries(ctx, *sloPath)
	if err != nil {
		fmt.Fprintf(stderr, "load slo: %v\n", err)
		return 1
	}
	eng, err := loadEntries(ctx, *engPath)
	if err != nil {
		fmt.Fprintf(stderr, "load eng: %v\n", err)
		return 1
	}
	if len(slo) != len(eng) {
		log.Warn("exports differ in size", zap.Int("slo", len(slo)), zap.Int("eng", len(eng)))
	}

	pairs, matchErr := pairing.Match(slo, eng)
	if matchErr != nil {
		log.Warn("pairing stopped", zap.Int("pairs", len(pairs)), zap.Error(matchErr))
	}

	if *jsonPath == "" && *dsn == "" {
		if err := pairing.WriteJSON(stdout, pairs); err != nil {
			fmt.Fprintf(stderr, "write json: %v\n", err)
			return 1
		}
	}

	if *jsonPath != "" {
		if err := writeJSONFile(*jsonPath, pairs); err != nil {
			fmt.Fprintf(stderr, "write json: %v\n", err)
			return 1
		}
	}

	if *dsn != "" {
		if err := saveSQLite(ctx, *dsn, pairs); err != nil {
			fmt.Fprintf(stderr, "sqlite: %v\n", err)
			return 1
		}
	}

	log.Info("pairs saved", zap.Int("pairs", len(pairs)))
	if matchErr != nil {
		return 1
	}
	return 0
}

func loadEntries(ctx context.Context, path string) ([]pairing.Entry, error) {
	src, err := htmlio.NewLoader(nil, 0).Load(ctx, htmlio.Input{Path: path})
	if err != nil {
		return nil, err
	}
	doc, err := htmlio.Parse(src)
	if err != nil {
		return nil, err
	}
	return pairing.Entries(doc)
}

func writeJSONFile(path string, pairs []pairing.Pair) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return pairing.WriteJSON(f, pairs)
}

func saveSQLite(ctx context.Context, dsn string, pairs []pairing.Pair) error {
	store, err := pairing.Open(ctx, dsn)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Save(ctx, pairs)
}
