// Package extract converts uploaded application documents into plain text.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"code.sajari.com/docconv"
	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedFileType is returned for any extension other than .pdf or
// .docx. Callers must not attempt extraction of such files.
var ErrUnsupportedFileType = errors.New("unsupported file type, only DOCX and PDF are supported")

// Text extracts UTF-8 plain text from a document buffer, dispatching on the
// declared file extension. The extractor is stateless; temporary files
// backing the buffer are the caller's responsibility.
func Text(data []byte, ext string) (string, error) {
	switch strings.ToLower(ext) {
	case ".docx":
		return docxText(data)
	case ".pdf":
		return pdfText(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFileType, ext)
	}
}

func docxText(data []byte) (string, error) {
	text, _, err := docconv.ConvertDocx(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to extract docx text: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func pdfText(data []byte) (text string, err error) {
	// the pdf parser panics on malformed xref tables
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to extract pdf text: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
