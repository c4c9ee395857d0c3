// Package render turns generated letter text into downloadable documents.
package render

import (
	"bytes"
	"strings"

	"github.com/go-pdf/fpdf"
)

// A4 letter layout in millimeters.
const (
	marginMM       = 25.4
	fontSizePt     = 11
	lineHeightMM   = 5.5
	paragraphGapMM = 4
)

// Paragraphs splits letter text into logical paragraphs. Paragraphs are
// separated by blank lines; inner line breaks and runs of whitespace collapse
// to single spaces. Text without a blank line is a single paragraph.
func Paragraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n\n")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		joined := strings.Join(strings.Fields(part), " ")
		if joined == "" {
			continue
		}
		out = append(out, joined)
	}
	return out
}

// Letter renders the text as a justified A4 PDF and returns the file bytes.
func Letter(text string) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(marginMM, marginMM, marginMM)
	doc.SetAutoPageBreak(true, marginMM)
	doc.SetFont("Helvetica", "", fontSizePt)
	doc.AddPage()

	// Core fonts only cover cp1252; translate what we can and let the rest
	// degrade rather than fail the download.
	tr := doc.UnicodeTranslatorFromDescriptor("")

	for i, block := range printableBlocks(tr, text) {
		if i > 0 {
			doc.Ln(paragraphGapMM)
		}
		doc.MultiCell(0, lineHeightMM, block, "", "J", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// printableBlocks translates each paragraph and drops the ones with nothing
// left to lay out, so paragraph gaps are only emitted between printed blocks.
func printableBlocks(tr func(string) string, text string) []string {
	var blocks []string
	for _, paragraph := range Paragraphs(text) {
		if translated := strings.TrimSpace(tr(paragraph)); translated != "" {
			blocks = append(blocks, translated)
		}
	}
	return blocks
}
