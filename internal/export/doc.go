// Package export renders resolved documents to files.
//
// # Formats
//
//   - pdf: A4 pages laid out from the parsed markup
//   - docx: one paragraph per line with bold and italic runs
//   - md: the resolved text as-is
//   - txt: the resolved text with inline markers removed
//   - json: the full document (template, values, variables, missing, resolved)
//
// # File Naming
//
// WriteFile builds the file name from a pattern with {name}, {date} and
// {format} tags:
//
//	exp.WriteFile("out", "{name}-{date}", export.PDF, doc) // out/contrato_sell-2026-01-15.pdf
//
// The format extension is appended when the expanded pattern lacks it.
// Files are written through a temp file and renamed into place, so a failed
// export never leaves a partial file behind.
package export
