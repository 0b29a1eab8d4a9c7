package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestSupported(t *testing.T) {
	tests := []struct {
		fileName string
		want     bool
	}{
		{"report.docx", true},
		{"report.pdf", true},
		{"notes.txt", true},
		{"REPORT.DOCX", true},
		{"archive.zip", false},
		{"image.png", false},
		{"script.exe", false},
		{"noextension", false},
		{"", false},
	}

	for _, tc := range tests {
		t.Run(tc.fileName, func(t *testing.T) {
			if got := Supported(tc.fileName); got != tc.want {
				t.Fatalf("Supported(%q) = %v, want %v", tc.fileName, got, tc.want)
			}
		})
	}
}

func TestTextUnsupported(t *testing.T) {
	_, err := Text("malware.exe", []byte("payload"))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestTextTxt(t *testing.T) {
	text, err := Text("notes.txt", []byte("  hello world\n"))
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	if text != "hello world" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestTextDocx(t *testing.T) {
	documentXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("failed to create zip entry: %v", err)
	}
	if _, err := f.Write([]byte(documentXML)); err != nil {
		t.Fatalf("failed to write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}

	text, err := Text("report.docx", buf.Bytes())
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	if !strings.Contains(text, "First paragraph.") {
		t.Fatalf("missing first paragraph in %q", text)
	}
	if !strings.Contains(text, "Second paragraph.") {
		t.Fatalf("missing second paragraph in %q", text)
	}
	if !strings.Contains(text, "First paragraph.\nSecond paragraph.") {
		t.Fatalf("paragraphs not newline-separated in %q", text)
	}
}

func TestTextDocxInvalid(t *testing.T) {
	if _, err := Text("broken.docx", []byte("not a zip")); err == nil {
		t.Fatal("expected error for invalid docx")
	}
}
