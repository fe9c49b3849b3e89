package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitRuns(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []Run
	}{
		{name: "empty", line: "", want: nil},
		{name: "plain", line: "just text", want: []Run{{Text: "just text"}}},
		{
			name: "bold in middle",
			line: "de um lado **Sell Administradora**, e de outro",
			want: []Run{
				{Text: "de um lado "},
				{Text: "Sell Administradora", Bold: true},
				{Text: ", e de outro"},
			},
		},
		{
			name: "italic and bold",
			line: "*nota* e **forte**",
			want: []Run{
				{Text: "nota", Italic: true},
				{Text: " e "},
				{Text: "forte", Bold: true},
			},
		},
		{name: "single asterisk is literal", line: "5 * 3", want: []Run{{Text: "5 * 3"}}},
		{name: "unclosed bold pair", line: "**open", want: []Run{{Bold: true}, {Text: "open"}}},
		{name: "adjacent runs", line: "**a***b*", want: []Run{{Text: "a", Bold: true}, {Text: "b", Italic: true}}},
		{name: "whole line bold", line: "**{Nome_Cliente}**", want: []Run{{Text: "{Nome_Cliente}", Bold: true}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitRuns(tt.line))
		})
	}
}

func TestParse(t *testing.T) {
	text := "# Contrato\n\n## 1. Do Objeto\nTexto *livre*.\n___________\r\n**Assinatura**"
	blocks := Parse(text)
	require.Len(t, blocks, 6)

	assert.Equal(t, Heading, blocks[0].Kind)
	assert.Equal(t, 1, blocks[0].Level)
	assert.Equal(t, "Contrato", blocks[0].Text())

	assert.Equal(t, Blank, blocks[1].Kind)

	assert.Equal(t, Heading, blocks[2].Kind)
	assert.Equal(t, 2, blocks[2].Level)
	assert.Equal(t, "1. Do Objeto", blocks[2].Text())

	assert.Equal(t, Paragraph, blocks[3].Kind)
	assert.Equal(t, []Run{{Text: "Texto "}, {Text: "livre", Italic: true}, {Text: "."}}, blocks[3].Runs)

	assert.Equal(t, Rule, blocks[4].Kind)
	assert.Equal(t, "___________", blocks[4].Source)

	assert.Equal(t, Paragraph, blocks[5].Kind)
	assert.True(t, blocks[5].Runs[0].Bold)
}

func TestParse_HeadingEdgeCases(t *testing.T) {
	assert.Equal(t, Paragraph, Parse("#hashtag")[0].Kind)
	assert.Equal(t, Paragraph, Parse("####### seven")[0].Kind)
	assert.Equal(t, Heading, Parse("###### six")[0].Kind)
	assert.Equal(t, Paragraph, Parse("--")[0].Kind)
	assert.Equal(t, Rule, Parse("---")[0].Kind)
	assert.Equal(t, Paragraph, Parse("-_-")[0].Kind)
}

func TestStrip(t *testing.T) {
	in := "# Title\n**Bold** and *it*\n\n____"
	assert.Equal(t, "Title\nBold and it\n\n____", Strip(in))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "heading", Heading.String())
	assert.Equal(t, "paragraph", Paragraph.String())
	assert.Equal(t, "rule", Rule.String())
	assert.Equal(t, "blank", Blank.String())
}
