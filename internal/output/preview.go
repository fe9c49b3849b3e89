package output

import (
	"fmt"
	"strings"

	"github.com/gorewood/docgen/internal/markup"
	"github.com/gorewood/docgen/internal/variable"
)

const ruleWidth = 48

// Preview renders resolved document text. On a terminal, headings, rules and
// inline runs are styled and the unfilled markers of missing variables are
// highlighted. Other writers receive the text unchanged.
func (p *Printer) Preview(text string, missing []string) {
	if !p.isTTY {
		mustWrite(fmt.Fprintln(p.w, text))
		return
	}

	pairs := make([]string, 0, len(missing)*2)
	for _, name := range missing {
		marker := variable.Unfilled(name)
		pairs = append(pairs, marker, p.styles.Unfilled.Render(marker))
	}
	highlight := strings.NewReplacer(pairs...)

	for _, block := range markup.Parse(text) {
		mustWrite(fmt.Fprintln(p.w, p.renderBlock(block, highlight)))
	}
}

func (p *Printer) renderBlock(block markup.Block, highlight *strings.Replacer) string {
	switch block.Kind {
	case markup.Blank:
		return ""
	case markup.Rule:
		return p.styles.Muted.Render(strings.Repeat("─", ruleWidth))
	case markup.Heading:
		return p.styles.Title.Render(highlight.Replace(block.Text()))
	}

	var b strings.Builder
	for _, run := range block.Runs {
		style := p.styles.Value
		switch {
		case run.Bold:
			style = p.styles.Bold
		case run.Italic:
			style = p.styles.Italic
		}
		b.WriteString(highlight.Replace(style.Render(run.Text)))
	}
	return b.String()
}
