package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"doclearn-backend/internal/shared/util"
)

// ExtractionError reports a byte-to-text decode failure for a specific file.
type ExtractionError struct {
	FileName string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.FileName, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Text converts file bytes into plain text for downstream analysis.
//
// Plain/script types come back verbatim, markup is tag-stripped, JSON is
// re-indented, CSV is rendered one readable line per row, and PDF/DOCX go
// through real parsers. Every other type degrades to a synthetic description
// derived from the file's metadata. The only failure mode is an
// *ExtractionError when the bytes cannot be decoded as text at all.
func Text(ctx context.Context, fileName string, mediaType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch classify(fileName, mediaType) {
	case kindPlain:
		return decodeText(fileName, data)
	case kindMarkup:
		raw, err := decodeText(fileName, data)
		if err != nil {
			return "", err
		}
		return stripMarkup(raw), nil
	case kindJSON:
		raw, err := decodeText(fileName, data)
		if err != nil {
			return "", err
		}
		return indentJSON(raw), nil
	case kindCSV:
		raw, err := decodeText(fileName, data)
		if err != nil {
			return "", err
		}
		return renderCSV(raw), nil
	case kindPDF:
		text, err := extractPDF(data)
		if err != nil {
			return describeFile(fileName, mediaType, int64(len(data))), nil
		}
		return text, nil
	case kindDOCX:
		text, err := extractDOCX(data)
		if err != nil {
			return describeFile(fileName, mediaType, int64(len(data))), nil
		}
		return text, nil
	default:
		return describeFile(fileName, mediaType, int64(len(data))), nil
	}
}

type fileKind int

const (
	kindOther fileKind = iota
	kindPlain
	kindMarkup
	kindJSON
	kindCSV
	kindPDF
	kindDOCX
)

func classify(fileName string, mediaType string) fileKind {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mediaType, ";")[0]))
	switch clean {
	case "text/plain", "text/css", "text/javascript", "application/javascript":
		return kindPlain
	case "text/html", "text/xml", "application/xml":
		return kindMarkup
	case "application/json":
		return kindJSON
	case "text/csv":
		return kindCSV
	case "application/pdf":
		return kindPDF
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return kindDOCX
	}

	switch util.FileExt(fileName) {
	case ".txt", ".css", ".js":
		return kindPlain
	case ".html", ".htm", ".xml":
		return kindMarkup
	case ".json":
		return kindJSON
	case ".csv":
		return kindCSV
	case ".pdf":
		return kindPDF
	case ".docx":
		return kindDOCX
	}
	return kindOther
}

func decodeText(fileName string, data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", &ExtractionError{FileName: fileName, Err: errors.New("invalid text encoding")}
	}
	return string(data), nil
}

// stripMarkup drops tags and returns the rendered text content. Whitespace
// inside lines collapses but words are preserved.
func stripMarkup(raw string) string {
	var buf strings.Builder
	inTag := false
	for _, r := range raw {
		switch {
		case r == '<':
			inTag = true
			buf.WriteByte(' ')
		case r == '>':
			inTag = false
		case !inTag:
			buf.WriteRune(r)
		}
	}

	lines := strings.Split(html.UnescapeString(buf.String()), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		collapsed := strings.Join(strings.Fields(line), " ")
		if collapsed != "" {
			out = append(out, collapsed)
		}
	}
	return strings.Join(out, "\n")
}

func indentJSON(raw string) string {
	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return raw
	}
	pretty, err := json.MarshalIndent(parsed, "", "  ")
	if err != nil {
		return raw
	}
	return string(pretty)
}

func renderCSV(raw string) string {
	lines := strings.Split(raw, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := strings.Split(line, ",")
		for i, cell := range cells {
			cells[i] = strings.TrimSpace(cell)
		}
		out = append(out, strings.Join(cells, " | "))
	}
	return strings.Join(out, "\n")
}

// describeFile builds the deterministic metadata fallback for types with no
// real extractor. Never an error: unknown types degrade, they don't fail.
func describeFile(fileName string, mediaType string, sizeBytes int64) string {
	label := "minimal"
	switch {
	case sizeBytes > 1_000_000:
		label = "substantial"
	case sizeBytes > 100_000:
		label = "moderate"
	}
	minutes := int64(math.Ceil(float64(sizeBytes) / 2000.0))
	return fmt.Sprintf(
		"Document: %s\nType: %s\nSize: %d bytes\n\nThis document contains a %s amount of content. Estimated reading time: %d minutes.",
		fileName, mediaType, sizeBytes, label, minutes,
	)
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	readerAt := bytes.NewReader(data)
	zr, err := zip.NewReader(readerAt, int64(len(data)))
	if err != nil {
		return "", err
	}

	var docFile *zip.File
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("document.xml file not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}

	return stripDocxXML(string(raw)), nil
}

func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if last := buf.Len(); last > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
