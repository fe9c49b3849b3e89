// Package markup parses the small Markdown subset used by form-letter
// templates: headings, horizontal rules and inline **bold** / *italic* runs.
//
// Parsing is line oriented. Inline markers only apply when a run is fully
// wrapped by a pair of markers within one line; any other asterisk is literal.
package markup

import (
	"regexp"
	"strings"
)

// inlinePattern matches a bold or italic run, leftmost-first and non-greedy.
var inlinePattern = regexp.MustCompile(`(\*\*.*?\*\*|\*.*?\*)`)

// Run is a span of text with uniform styling.
type Run struct {
	Text   string `json:"text"`
	Bold   bool   `json:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty"`
}

// Kind identifies a block type.
type Kind int

// Block kinds.
const (
	Paragraph Kind = iota
	Heading
	Rule
	Blank
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case Heading:
		return "heading"
	case Rule:
		return "rule"
	case Blank:
		return "blank"
	default:
		return "paragraph"
	}
}

// Block is one parsed line.
type Block struct {
	Kind   Kind
	Level  int // heading level 1-6, zero otherwise
	Runs   []Run
	Source string
}

// Text returns the block text without markup.
func (b Block) Text() string {
	return PlainText(b.Runs)
}

// SplitRuns splits a single line into styled runs. A part wrapped in "**"
// is bold, otherwise a part wrapped in "*" is italic, otherwise it is plain.
// Empty plain parts are dropped.
func SplitRuns(line string) []Run {
	var runs []Run
	last := 0
	for _, loc := range inlinePattern.FindAllStringIndex(line, -1) {
		if loc[0] > last {
			runs = append(runs, Run{Text: line[last:loc[0]]})
		}
		runs = append(runs, styledRun(line[loc[0]:loc[1]]))
		last = loc[1]
	}
	if last < len(line) {
		runs = append(runs, Run{Text: line[last:]})
	}
	return runs
}

// styledRun converts a matched marker span into a run.
func styledRun(part string) Run {
	if strings.HasPrefix(part, "**") && strings.HasSuffix(part, "**") {
		if len(part) < 4 {
			return Run{Bold: true}
		}
		return Run{Text: part[2 : len(part)-2], Bold: true}
	}
	return Run{Text: part[1 : len(part)-1], Italic: true}
}

// PlainText joins the run texts.
func PlainText(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Parse splits text into one block per line. Both "\n" and "\r\n" end a line.
func Parse(text string) []Block {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	blocks := make([]Block, 0, len(lines))
	for _, line := range lines {
		blocks = append(blocks, parseLine(line))
	}
	return blocks
}

// parseLine classifies a single line.
func parseLine(line string) Block {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Block{Kind: Blank, Source: line}
	}
	if isRule(trimmed) {
		return Block{Kind: Rule, Source: line}
	}
	if level, rest, ok := headingLevel(trimmed); ok {
		return Block{Kind: Heading, Level: level, Runs: SplitRuns(rest), Source: line}
	}
	return Block{Kind: Paragraph, Runs: SplitRuns(line), Source: line}
}

// headingLevel reports "# " through "###### " prefixes.
func headingLevel(line string) (int, string, bool) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 || level == len(line) || line[level] != ' ' {
		return 0, "", false
	}
	return level, strings.TrimSpace(line[level:]), true
}

// isRule reports a line made only of three or more '_', '-' or '*'.
func isRule(line string) bool {
	if len(line) < 3 {
		return false
	}
	ch := line[0]
	if ch != '_' && ch != '-' && ch != '*' {
		return false
	}
	return strings.Count(line, string(ch)) == len(line)
}

// Strip removes inline markers and heading prefixes from text.
// Rules and blank lines are kept as written.
func Strip(text string) string {
	blocks := Parse(text)
	lines := make([]string, 0, len(blocks))
	for _, b := range blocks {
		switch b.Kind {
		case Blank, Rule:
			lines = append(lines, b.Source)
		default:
			lines = append(lines, b.Text())
		}
	}
	return strings.Join(lines, "\n")
}
