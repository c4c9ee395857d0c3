package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"testing"
)

func makeDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var body bytes.Buffer
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		fmt.Fprintf(&body, `<w:p><w:r><w:t>%s</w:t></w:r></w:p>`, p)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entries := map[string]string{
		"[Content_Types].xml":          `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="xml" ContentType="application/xml"/></Types>`,
		"word/document.xml":            body.String(),
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	}
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write zip entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestText_TxtPassesThroughVerbatim(t *testing.T) {
	in := "Budi Santoso\nbudi@example.com\n0812-3456-7890\n"
	out, err := Text([]byte(in), "text/plain; charset=utf-8", "resume.txt")
	if err != nil {
		t.Fatalf("txt extract: %v", err)
	}
	if out != in {
		t.Fatalf("expected verbatim text, got %q", out)
	}
}

func TestText_UnsupportedMime(t *testing.T) {
	_, err := Text([]byte{0x89, 0x50, 0x4e, 0x47}, "image/png", "photo.png")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestText_PlainZipRejected(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	_, err = Text(buf.Bytes(), "application/zip", "notes.zip")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported for plain zip, got %v", err)
	}
}

func TestText_DocxParagraphsJoined(t *testing.T) {
	data := makeDocx(t, "Budi Santoso", "Software Engineer at PT Maju")

	out, err := Text(data, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "resume.docx")
	if err != nil {
		t.Fatalf("docx extract: %v", err)
	}
	want := "Budi Santoso\nSoftware Engineer at PT Maju"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestText_ZipDeclaredDocxNormalizes(t *testing.T) {
	data := makeDocx(t, "Budi Santoso")

	out, err := Text(data, "application/zip", "resume.docx")
	if err != nil {
		t.Fatalf("expected docx to extract from zip mime: %v", err)
	}
	if out != "Budi Santoso" {
		t.Fatalf("unexpected text: %q", out)
	}
}

func TestText_CorruptDocxDecodeError(t *testing.T) {
	_, err := Text([]byte("not a zip at all"), "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "resume.docx")
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}
