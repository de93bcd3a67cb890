// Package docx builds minimal WordprocessingML documents for transcript export.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`

const documentFooter = `</w:body></w:document>`

// Paragraph is a single block of text in the exported document. Bold is used
// for role labels so transcripts remain readable in any word processor.
type Paragraph struct {
	Text string
	Bold bool
}

// Build renders the paragraphs into a complete .docx archive.
func Build(paragraphs []Paragraph) ([]byte, error) {
	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)

	parts := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", documentXML(paragraphs)},
	}
	for _, part := range parts {
		writer, err := archive.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", part.name, err)
		}
		if _, err := writer.Write([]byte(part.body)); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", part.name, err)
		}
	}
	if err := archive.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	return buf.Bytes(), nil
}

func documentXML(paragraphs []Paragraph) string {
	var body bytes.Buffer
	body.WriteString(documentHeader)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r>`)
		if p.Bold {
			body.WriteString(`<w:rPr><w:b/></w:rPr>`)
		}
		body.WriteString(`<w:t xml:space="preserve">`)
		body.WriteString(escape(p.Text))
		body.WriteString(`</w:t></w:r></w:p>`)
	}
	body.WriteString(documentFooter)
	return body.String()
}

func escape(text string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(text))
	return buf.String()
}
