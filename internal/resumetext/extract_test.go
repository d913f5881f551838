package resumetext

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"[Content_Types].xml":          `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml":            `<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body + `</w:body></w:document>`,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create: %v", err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("zip write: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func TestExtract_Text(t *testing.T) {
	got, err := Extract("resume.TXT", []byte("Jane Doe\r\nGo engineer   \n\n\n\nKubernetes\n"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := "Jane Doe\nGo engineer\n\nKubernetes"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestExtract_Docx(t *testing.T) {
	data := buildDocx(t,
		`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>`+
			`<w:p><w:r><w:t>Go &amp; Postgres</w:t></w:r></w:p>`)

	got, err := Extract("cv.docx", data)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(got, "Jane Doe") || !strings.Contains(got, "Go & Postgres") {
		t.Fatalf("unexpected text %q", got)
	}
	if strings.Contains(got, "<w:") {
		t.Fatalf("xml tags leaked: %q", got)
	}
}

func TestExtract_Unsupported(t *testing.T) {
	_, err := Extract("photo.png", []byte{0x89, 'P', 'N', 'G'})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestExtract_Empty(t *testing.T) {
	_, err := Extract("blank.txt", []byte("  \n\t\n"))
	if !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
}

func TestExtract_InvalidPDF(t *testing.T) {
	_, err := Extract("cv.pdf", []byte("not a pdf"))
	if err == nil {
		t.Fatalf("expected error for garbage pdf")
	}
}

func TestSetLicense_EmptyIsNoop(t *testing.T) {
	if err := SetLicense("  "); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}
