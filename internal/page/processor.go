// Package page wires the cleanup and enhancement passes into a single
// source-to-source transformation for one dictionary page.
package page

import (
	"go.uber.org/zap"

	"sskj/internal/cleanup"
	"sskj/internal/enhance"
	"sskj/internal/htmlio"
	"sskj/internal/rules"
)

// Processor turns the raw HTML of a page into its enhanced form.
// It holds no per-page state and is safe for concurrent use.
type Processor struct {
	rules rules.File
	log   *zap.Logger
}

// NewProcessor creates a Processor. A nil logger discards logs.
func NewProcessor(r rules.File, log *zap.Logger) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	r.Enhance = r.Enhance.WithDefaults()
	return &Processor{rules: r, log: log}
}

// Result is the outcome of processing one page.
type Result struct {
	HTML    string
	Cleanup cleanup.Stats
	Report  enhance.Report
}

// Process parses src, runs the cleanup steps and then the enhancement passes,
// and renders the page back to HTML.
func (p *Processor) Process(name, src string) (Result, error) {
	doc, err := htmlio.Parse(src)
	if err != nil {
		return Result{}, err
	}

	st := cleanup.Apply(doc, p.rules.Cleanup)
	rep := enhance.OnReady(doc, p.rules.Enhance)

	out, err := htmlio.RenderString(doc)
	if err != nil {
		return Result{}, err
	}
	if p.rules.Cleanup.RemoveBlankLines {
		out = cleanup.RemoveBlankLines(out)
	}

	p.log.Debug("page processed",
		zap.String("page", name),
		zap.Int("cleaned", st.Total()),
		zap.Int("semicolons", rep.Count(enhance.PassSemicolons)),
		zap.Int("diacritics", rep.Count(enhance.PassDiacritics)),
	)

	return Result{HTML: out, Cleanup: st, Report: rep}, nil
}
