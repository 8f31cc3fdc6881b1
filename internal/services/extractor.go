package services

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/otiai10/gosseract/v2"
)

type DocumentFormat string

const (
	FormatPDF   DocumentFormat = "pdf"
	FormatDOCX  DocumentFormat = "docx"
	FormatTXT   DocumentFormat = "txt"
	FormatImage DocumentFormat = "image"
)

// FormatFromFilename derives the document format from the file extension.
// It runs before any bytes are touched, so an unknown extension rejects
// the upload immediately.
func FormatFromFilename(filename string) (DocumentFormat, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "pdf":
		return FormatPDF, nil
	case "docx":
		return FormatDOCX, nil
	case "txt":
		return FormatTXT, nil
	case "jpg", "jpeg", "png":
		return FormatImage, nil
	}
	return "", ErrUnsupportedFormat
}

type TextExtractor interface {
	Extract(data []byte, format DocumentFormat) (string, error)
}

type textExtractor struct{}

func NewTextExtractor() TextExtractor {
	return &textExtractor{}
}

// Extract converts raw document bytes into plain text. The result is
// trimmed but may be empty; emptiness is checked by the analyzer.
func (e *textExtractor) Extract(data []byte, format DocumentFormat) (string, error) {
	var text string
	var err error

	switch format {
	case FormatTXT:
		text, err = extractPlainText(data)
	case FormatPDF:
		text, err = extractPDF(data)
	case FormatDOCX:
		text, err = extractDOCX(data)
	case FormatImage:
		text, err = extractImageOCR(data)
	default:
		return "", ErrUnsupportedFormat
	}

	if err != nil {
		return "", &ExtractionError{Format: format, Cause: err}
	}

	return strings.TrimSpace(text), nil
}

func extractPlainText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("file is not valid UTF-8 text")
	}
	return string(data), nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX archive: %w", err)
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("missing word/document.xml")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("failed to read document XML: %w", err)
	}
	defer rc.Close()

	// Paragraphs are <w:p> elements; their visible text lives in <w:t>.
	decoder := xml.NewDecoder(rc)
	var paragraphs []string
	var current strings.Builder
	inText := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse document XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}

	return strings.Join(paragraphs, "\n"), nil
}

func extractImageOCR(data []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("failed to load image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return text, nil
}
