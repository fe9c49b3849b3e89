// Package docx writes resolved documents as Office Open XML word-processing
// files.
//
// Each input line becomes one paragraph. Inline **bold** and *italic* runs are
// carried over as run properties; headings and rules are kept as literal text.
package docx

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/klauspost/compress/zip"

	"github.com/gorewood/docgen/internal/markup"
)

// ContentType is the MIME type of the files Write produces.
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

const (
	nsMain          = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsRelationships = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
	relOfficeDoc    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"

	partDocument = "word/document.xml"

	// A4 in twentieths of a point, with 2 cm margins.
	pageWidth  = "11906"
	pageHeight = "16838"
	pageMargin = "1134"
)

// Write encodes text as a .docx package to w.
func Write(w io.Writer, text string) error {
	parts := []struct {
		name string
		doc  *etree.Document
	}{
		{"[Content_Types].xml", contentTypes()},
		{"_rels/.rels", packageRels()},
		{partDocument, Document(text)},
	}

	zw := zip.NewWriter(w)
	for _, part := range parts {
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: part.name, Method: zip.Deflate})
		if err != nil {
			return fmt.Errorf("create %s: %w", part.name, err)
		}
		if _, err := part.doc.WriteTo(fw); err != nil {
			return fmt.Errorf("write %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish docx: %w", err)
	}
	return nil
}

// Document builds the word/document.xml part for text.
func Document(text string) *etree.Document {
	doc := newXML()
	root := doc.CreateElement("w:document")
	root.CreateAttr("xmlns:w", nsMain)
	body := root.CreateElement("w:body")

	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, line := range strings.Split(text, "\n") {
		p := body.CreateElement("w:p")
		for _, run := range markup.SplitRuns(line) {
			addRun(p, run)
		}
	}

	sect := body.CreateElement("w:sectPr")
	size := sect.CreateElement("w:pgSz")
	size.CreateAttr("w:w", pageWidth)
	size.CreateAttr("w:h", pageHeight)
	margins := sect.CreateElement("w:pgMar")
	for _, side := range []string{"w:top", "w:right", "w:bottom", "w:left"} {
		margins.CreateAttr(side, pageMargin)
	}
	return doc
}

func addRun(p *etree.Element, run markup.Run) {
	r := p.CreateElement("w:r")
	if run.Bold || run.Italic {
		props := r.CreateElement("w:rPr")
		if run.Bold {
			props.CreateElement("w:b")
		}
		if run.Italic {
			props.CreateElement("w:i")
		}
	}
	t := r.CreateElement("w:t")
	t.CreateAttr("xml:space", "preserve")
	t.SetText(run.Text)
}

func contentTypes() *etree.Document {
	doc := newXML()
	types := doc.CreateElement("Types")
	types.CreateAttr("xmlns", nsContentTypes)

	rels := types.CreateElement("Default")
	rels.CreateAttr("Extension", "rels")
	rels.CreateAttr("ContentType", "application/vnd.openxmlformats-package.relationships+xml")

	xml := types.CreateElement("Default")
	xml.CreateAttr("Extension", "xml")
	xml.CreateAttr("ContentType", "application/xml")

	main := types.CreateElement("Override")
	main.CreateAttr("PartName", "/"+partDocument)
	main.CreateAttr("ContentType", "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml")
	return doc
}

func packageRels() *etree.Document {
	doc := newXML()
	rels := doc.CreateElement("Relationships")
	rels.CreateAttr("xmlns", nsRelationships)
	rel := rels.CreateElement("Relationship")
	rel.CreateAttr("Id", "rId1")
	rel.CreateAttr("Type", relOfficeDoc)
	rel.CreateAttr("Target", partDocument)
	return doc
}

func newXML() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	return doc
}
