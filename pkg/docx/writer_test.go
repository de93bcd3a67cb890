package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestBuildProducesReadableArchive(t *testing.T) {
	data, err := Build([]Paragraph{
		{Text: "کاربر", Bold: true},
		{Text: "hello <world> & friends"},
	})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("output is not a zip archive: %v", err)
	}

	var document string
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			t.Fatalf("failed to open document part: %v", err)
		}
		raw, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("failed to read document part: %v", err)
		}
		document = string(raw)
	}
	if document == "" {
		t.Fatal("archive is missing word/document.xml")
	}

	if !strings.Contains(document, "کاربر") {
		t.Error("document does not contain the bold label text")
	}
	if !strings.Contains(document, "hello &lt;world&gt; &amp; friends") {
		t.Error("document does not escape markup in paragraph text")
	}
	if !strings.Contains(document, "<w:b/>") {
		t.Error("document does not mark the label run as bold")
	}
}
