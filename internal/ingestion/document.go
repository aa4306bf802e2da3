// Package ingestion converts uploaded resume documents into plain text.
// PDF, DOCX, and plain text are supported; everything downstream operates on
// the extracted text only.
package ingestion

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/jonathan/resume-matcher/internal/parsing"
)

// Content types accepted by ExtractText.
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypeText = "text/plain"
)

var (
	pdfMagic = []byte("%PDF-")
	zipMagic = []byte("PK\x03\x04")

	docxTag = regexp.MustCompile(`<[^>]+>`)
)

// SniffContentType guesses a document's content type from its leading bytes.
// Used when the upload carries no usable Content-Type header. DOCX files are
// ZIP containers, so the ZIP magic is treated as DOCX here.
func SniffContentType(data []byte) string {
	switch {
	case bytes.HasPrefix(data, pdfMagic):
		return ContentTypePDF
	case bytes.HasPrefix(data, zipMagic):
		return ContentTypeDocx
	default:
		return ContentTypeText
	}
}

// ExtractText extracts plain text from a resume document. An empty
// contentType falls back to magic-byte sniffing. Unsupported or corrupt
// documents fail with a DecodeError.
func ExtractText(data []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = SniffContentType(data)
	}
	// Strip charset and boundary parameters.
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}

	switch contentType {
	case ContentTypeText:
		return string(data), nil
	case ContentTypePDF:
		return extractPDFText(data)
	case ContentTypeDocx:
		return extractDocxText(data)
	default:
		return "", &parsing.DecodeError{
			SourceHint: contentType,
			Message:    "unsupported document type",
		}
	}
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &parsing.DecodeError{SourceHint: ContentTypePDF, Message: "cannot read PDF", Cause: err}
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &parsing.DecodeError{SourceHint: ContentTypeDocx, Message: "cannot read DOCX", Cause: err}
	}
	defer doc.Close()

	// GetContent returns the raw document XML; drop the markup and keep the
	// runs' text.
	content := doc.Editable().GetContent()
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	return docxTag.ReplaceAllString(content, " "), nil
}
