// Command sskj-enhance applies the dictionary page passes (example semicolon
// fixer, headword diacritic normalizer, optional cleanup) to HTML pages.
//
// Usage (stdin to stdout):
//
//	cat page.html | sskj-enhance > page.out.html
//
// Usage (file or URL):
//
//	sskj-enhance --in page.html --out page.out.html
//	sskj-enhance --url "https://example.com/sskj/hisa" --rules rules.yaml
//
// Usage (directory mode, in place or into another directory):
//
//	sskj-enhance --dir ./pages --out-dir ./pages
//
// Dry run (print the edits instead of the page):
//
//	sskj-enhance --dir ./pages --dry-run
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"sskj/internal/enhance"
	"sskj/internal/htmlio"
	"sskj/internal/logging"
	"sskj/internal/page"
	"sskj/internal/rules"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(
		ctx,
		os.Args[1:],
		os.Stdin,
		os.Stdout,
		os.Stderr,
		http.DefaultClient,
	)
	stop()
	os.Exit(code)
}

// run is split out from main so we can unit test the command without spawning
// an OS process.
//
// It returns a Unix-style exit code:
//   - 0 for success
//   - 2 for usage/config errors
//   - 1 for operational/runtime errors
func run(
	ctx context.Context,
	args []string,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	httpClient *http.Client,
) int {
	fs := pflag.NewFlagSet("sskj-enhance", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	inPath := fs.StringP("in", "i", "", "Read the page from this file instead of stdin")
	urlFlag := fs.String("url", "", "Fetch the page from this URL instead of stdin")
	timeout := fs.Duration("timeout", 20*time.Second, "Timeout for --url fetch")
	outPath := fs.StringP("out", "o", "", "Write the page to this file instead of stdout")
	dirFlag := fs.String("dir", "", "Process every .html/.htm file in this directory")
	outDir := fs.String("out-dir", "", "Directory mode: write results here (may equal --dir)")
	workers := fs.IntP("workers", "w", 4, "Directory mode: files processed at once")
	rulesPath := fs.StringP("rules", "r", "", "Rules file (YAML) with selectors and cleanup steps")
	dryRun := fs.Bool("dry-run", false, "Print the edits that would be made instead of writing pages")
	verbose := fs.BoolP("verbose", "v", false, "Enable debug logs")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	log := logging.New(stderr, *verbose)
	defer func() { _ = log.Sync() }()

	rf := rules.Default()
	if *rulesPath != "" {
		var err error
		if rf, err = rules.Load(*rulesPath); err != nil {
			fmt.Fprintf(stderr, "load rules: %v\n", err)
			return 2
		}
	}
	proc := page.NewProcessor(rf, log)

	if *dirFlag != "" {
		if *inPath != "" || *urlFlag != "" || *outPath != "" {
			fmt.Fprintf(stderr, "--dir cannot be combined with --in, --url or --out\n")
			return 2
		}
		if *outDir == "" && !*dryRun {
			fmt.Fprintf(stderr, "--dir requires --out-dir (or --dry-run)\n")
			return 2
		}
		return runDir(ctx, proc, *dirFlag, *outDir, *workers, *dryRun, stdout, stderr, log)
	}

	if *inPath != "" && *urlFlag != "" {
		fmt.Fprintf(stderr, "--in and --url are mutually exclusive\n")
		return 2
	}

	loader := htmlio.NewLoader(httpClient, *timeout)
	src, err := loader.Load(ctx, htmlio.Input{
		URL:   *urlFlag,
		Path:  *inPath,
		Stdin: stdin,
	})
	if err != nil {
		fmt.Fprintf(stderr, "load html: %v\n", err)
		return 1
	}

	name := *inPath
	if *urlFlag != "" {
		name = *urlFlag
	}
	res, err := proc.Process(name, src)
	if err != nil {
		fmt.Fprintf(stderr, "process: %v\n", err)
		return 1
	}

	if *dryRun {
		if err := enhance.WriteEdits(stdout, "", res.Report.Edits); err != nil {
			fmt.Fprintf(stderr, "dry run: %v\n", err)
			return 1
		}
		return 0
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, []byte(res.HTML), 0o644); err != nil {
			fmt.Fprintf(stderr, "write output: %v\n", err)
			return 1
		}
	} else if _, err := io.WriteString(stdout, res.HTML); err != nil {
		fmt.Fprintf(stderr, "write output: %v\n", err)
		return 1
	}

	log.Info("page enhanced",
		zap.Int("semicolons", res.Report.Count(enhance.PassSemicolons)),
		zap.Int("diacritics", res.Report.Count(enhance.PassDiacritics)),
		zap.Int("cleaned", res.Cleanup.Total()),
	)
	return 0
}

func runDir(
	ctx context.Context,
	proc *page.Processor,
	dir, outDir string,
	workers int,
	dryRun bool,
	stdout, stderr io.Writer,
	log *zap.Logger,
) int {
	var (
		mu      sync.Mutex
		reports = map[string]enhance.Report{}
	)

	dst := outDir
	if dryRun {
		dst = ""
	}

	res, err := htmlio.ProcessDir(ctx, dir, dst, workers, log, func(_ context.Context, name, src string) (string, error) {
		r, err := proc.Process(name, src)
		if err != nil {
			return "", err
		}
		mu.Lock()
		reports[name] = r.Report
		mu.Unlock()
		return r.HTML, nil
	})
	if err != nil {
		fmt.Fprintf(stderr, "dir enhance: %v\n", err)
		return 1
	}

	edits := 0
	for _, name := range res.Processed {
		rep := reports[name]
		edits += len(rep.Edits)
		if dryRun {
			if err := enhance.WriteEdits(stdout, name, rep.Edits); err != nil {
				fmt.Fprintf(stderr, "dry run: %v\n", err)
				return 1
			}
		}
	}

	log.Info("directory enhanced",
		zap.String("dir", dir),
		zap.Int("files", len(res.Processed)),
		zap.Int("skipped", len(res.Skipped)),
		zap.Int("edits", edits),
	)
	return 0
}
