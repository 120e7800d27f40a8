// Package extract turns uploaded resume documents into plain text.
package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	pdf "github.com/ledongthuc/pdf"

	"jobrec/internal/apperr"
)

// Kind is a supported document format.
type Kind string

const (
	KindPDF  Kind = "pdf"
	KindDOCX Kind = "docx"
)

// MsgUnsupported is returned to callers uploading anything but PDF or DOCX.
const MsgUnsupported = "Unsupported file format. Use PDF or DOCX."

// KindFromFilename picks the document kind from the file suffix, ignoring case.
func KindFromFilename(name string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return KindPDF, nil
	case ".docx":
		return KindDOCX, nil
	default:
		return "", apperr.New(apperr.KindUnsupportedFormat, MsgUnsupported)
	}
}

// Extract returns the plain text of content. Unsupported kinds fail before any
// parsing; parser failures are reported as EXTRACTION_FAILED.
func Extract(content []byte, kind Kind) (string, error) {
	switch kind {
	case KindPDF:
		text, err := pdfText(content)
		if err != nil {
			return "", apperr.Wrap(apperr.KindExtractionFailed, "PDF extraction failed", err)
		}
		return text, nil
	case KindDOCX:
		text, err := docxText(content)
		if err != nil {
			return "", apperr.Wrap(apperr.KindExtractionFailed, "DOCX extraction failed", err)
		}
		return text, nil
	default:
		return "", apperr.New(apperr.KindUnsupportedFormat, MsgUnsupported)
	}
}

// pdfText concatenates page text in page order. Pages without a text layer
// (scans) contribute nothing; there is no OCR.
func pdfText(data []byte) (text string, err error) {
	// The pdf package panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		b.WriteString(pageText)
	}
	return b.String(), nil
}

const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// docxText joins paragraph text from word/document.xml with newlines.
// Paragraphs inside tables and text boxes are included in document order.
func docxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", errors.New("word/document.xml not found")
	}

	rc, err := doc.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	var (
		paragraphs []string
		open       []*strings.Builder
		inText     bool
		runDepth   int
	)
	dec := xml.NewDecoder(rc)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "p":
				open = append(open, &strings.Builder{})
			case "r":
				runDepth++
			case "t":
				inText = true
			case "tab":
				// w:tab also appears in paragraph properties as a tab stop.
				if runDepth > 0 && len(open) > 0 {
					open[len(open)-1].WriteByte('\t')
				}
			case "br", "cr":
				if runDepth > 0 && len(open) > 0 {
					open[len(open)-1].WriteByte('\n')
				}
			}
		case xml.EndElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "p":
				if len(open) == 0 {
					continue
				}
				paragraphs = append(paragraphs, open[len(open)-1].String())
				open = open[:len(open)-1]
			case "r":
				runDepth--
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText && len(open) > 0 {
				open[len(open)-1].Write(t)
			}
		}
	}

	return strings.Join(paragraphs, "\n"), nil
}
