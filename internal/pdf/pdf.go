// Package pdf lays out parsed form-letter blocks on A4 pages.
package pdf

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/gorewood/docgen/internal/markup"
)

// Core fonts accepted in Options.Font.
var Fonts = []string{"Helvetica", "Times", "Courier"}

const (
	marginMM    = 20.0
	ptToMM      = 0.3528
	lineSpacing = 1.4
)

// headingScale maps heading level to a font size multiplier.
var headingScale = map[int]float64{1: 1.8, 2: 1.5, 3: 1.3}

// Options controls page text styling and document metadata.
type Options struct {
	Font     string
	FontSize float64
	Title    string
	// Created, when set, fixes the creation date for reproducible output.
	Created time.Time
}

// DefaultOptions returns Helvetica 11pt with no title.
func DefaultOptions() Options {
	return Options{Font: "Helvetica", FontSize: 11}
}

// Validate reports an unsupported font or a non-positive size.
func (o Options) Validate() error {
	if !slices.Contains(Fonts, o.Font) {
		return fmt.Errorf("unsupported pdf font %q (want one of %s)", o.Font, strings.Join(Fonts, ", "))
	}
	if o.FontSize <= 0 {
		return fmt.Errorf("pdf font size must be positive, got %v", o.FontSize)
	}
	return nil
}

// Write renders blocks to w as an A4 portrait PDF.
func Write(w io.Writer, blocks []markup.Block, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(marginMM, marginMM, marginMM)
	doc.SetAutoPageBreak(true, marginMM)
	if opts.Title != "" {
		doc.SetTitle(opts.Title, true)
	}
	doc.SetCreator("docgen", true)
	doc.SetCatalogSort(true)
	if !opts.Created.IsZero() {
		doc.SetCreationDate(opts.Created)
	}
	doc.AddPage()

	l := &layout{doc: doc, opts: opts, tr: doc.UnicodeTranslatorFromDescriptor("")}
	for _, block := range blocks {
		l.block(block)
	}

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

type layout struct {
	doc  *fpdf.Fpdf
	opts Options
	tr   func(string) string
}

func (l *layout) block(b markup.Block) {
	size := l.opts.FontSize
	switch b.Kind {
	case markup.Blank:
		l.doc.Ln(lineHeight(size))
	case markup.Rule:
		h := lineHeight(size)
		width, _ := l.doc.GetPageSize()
		y := l.doc.GetY() + h/2
		l.doc.SetLineWidth(0.2)
		l.doc.Line(marginMM, y, width-marginMM, y)
		l.doc.Ln(h)
	case markup.Heading:
		scale, ok := headingScale[b.Level]
		if !ok {
			scale = 1.1
		}
		size *= scale
		for _, run := range b.Runs {
			l.run(run, size, true)
		}
		l.doc.Ln(lineHeight(size))
	default:
		for _, run := range b.Runs {
			l.run(run, size, false)
		}
		l.doc.Ln(lineHeight(size))
	}
}

func (l *layout) run(run markup.Run, size float64, bold bool) {
	style := ""
	if bold || run.Bold {
		style += "B"
	}
	if run.Italic {
		style += "I"
	}
	l.doc.SetFont(l.opts.Font, style, size)
	l.doc.Write(lineHeight(size), l.tr(run.Text))
}

func lineHeight(size float64) float64 {
	return size * ptToMM * lineSpacing
}
