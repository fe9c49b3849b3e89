package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/valyala/fasttemplate"

	"github.com/gorewood/docgen/internal/docx"
	"github.com/gorewood/docgen/internal/markup"
	"github.com/gorewood/docgen/internal/output"
	"github.com/gorewood/docgen/internal/pdf"
	"github.com/gorewood/docgen/internal/store"
)

// Format is an export file format.
type Format string

// Supported formats.
const (
	PDF      Format = "pdf"
	DOCX     Format = "docx"
	Markdown Format = "md"
	Text     Format = "txt"
	JSON     Format = "json"
)

// Formats lists every supported format in display order.
var Formats = []Format{PDF, DOCX, Markdown, Text, JSON}

const (
	// DefaultPattern is the file name pattern used when none is configured.
	DefaultPattern = "{name}"

	// DefaultName is the document name used when a document has none.
	DefaultName = "contrato_sell"
)

var formatAliases = map[string]Format{
	"markdown": Markdown,
	"text":     Text,
}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if alias, ok := formatAliases[name]; ok {
		return alias, nil
	}
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q (want one of %s)", s, formatList())
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Exporter renders documents in every supported format.
type Exporter struct {
	pdf    pdf.Options
	logger zerolog.Logger
	now    func() time.Time
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithPDFOptions sets the PDF font, size and title.
func WithPDFOptions(opts pdf.Options) Option {
	return func(e *Exporter) { e.pdf = opts }
}

// WithLogger sets the logger that records export failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Exporter) { e.logger = logger }
}

// WithClock sets the time source for the {date} tag.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

// New creates an Exporter with default PDF options.
func New(opts ...Option) *Exporter {
	e := &Exporter{
		pdf:    pdf.DefaultOptions(),
		logger: zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Render writes doc to w in the given format.
func (e *Exporter) Render(w io.Writer, format Format, doc *store.Document) error {
	switch format {
	case PDF:
		opts := e.pdf
		if opts.Title == "" {
			opts.Title = documentName(doc)
		}
		return pdf.Write(w, markup.Parse(doc.Resolved), opts)
	case DOCX:
		return docx.Write(w, doc.Resolved)
	case Markdown:
		_, err := io.WriteString(w, doc.Resolved)
		return err
	case Text:
		_, err := io.WriteString(w, markup.Strip(doc.Resolved))
		return err
	case JSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal document: %w", err)
		}
		_, err = w.Write(append(data, '\n'))
		return err
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// FileName expands pattern for doc and format.
func (e *Exporter) FileName(pattern string, format Format, doc *store.Document) string {
	if strings.TrimSpace(pattern) == "" {
		pattern = DefaultPattern
	}
	name := fasttemplate.ExecuteStringStd(pattern, "{", "}", map[string]any{
		"name":   documentName(doc),
		"date":   e.now().Format("2006-01-02"),
		"format": string(format),
	})
	name = sanitizeFileName(name)
	if name == "" {
		name = DefaultName
	}

	ext := "." + string(format)
	if !strings.EqualFold(filepath.Ext(name), ext) {
		name += ext
	}
	return name
}

// WriteFile renders doc and writes it to dir under a name built from pattern.
// It returns the written path.
func (e *Exporter) WriteFile(dir, pattern string, format Format, doc *store.Document) (string, error) {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, e.FileName(pattern, format, doc))
	log := e.logger.With().Str("format", string(format)).Str("path", path).Logger()

	var buf bytes.Buffer
	if err := e.Render(&buf, format, doc); err != nil {
		log.Error().Err(err).Msg("export render failed")
		return "", output.NewSystemErrorWithCause(fmt.Sprintf("failed to render %s", format), err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Error().Err(err).Msg("export directory unavailable")
		return "", output.NewSystemErrorWithCause("failed to create output directory", err)
	}
	if err := atomicWrite(path, buf.Bytes()); err != nil {
		log.Error().Err(err).Msg("export write failed")
		return "", output.NewSystemErrorWithCause(fmt.Sprintf("failed to write %s", path), err)
	}

	log.Debug().Int("bytes", buf.Len()).Msg("exported document")
	return path, nil
}

func documentName(doc *store.Document) string {
	if name := strings.TrimSpace(doc.Name); name != "" {
		return name
	}
	return DefaultName
}

// sanitizeFileName replaces path separators and characters that are invalid
// in Windows file names.
func sanitizeFileName(name string) string {
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || strings.ContainsRune(`/\:*?"<>|`, r) {
			return '_'
		}
		return r
	}, name)
	return strings.Trim(strings.TrimSpace(name), ".")
}

// atomicWrite writes data to path using write-to-temp-then-rename.
func atomicWrite(path string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".tmp-*"+filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if err := tmpFile.Chmod(0o644); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
