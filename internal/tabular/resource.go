package tabular

import (
	"bytes"
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

var (
	// ErrUndecodable is returned when no supported encoding can read a resource.
	ErrUndecodable = errors.New("resource not decodable in any supported encoding")

	byteOrderMark = []byte{0xEF, 0xBB, 0xBF}
)

// delimiterSampleSize bounds how much content delimiter detection inspects.
const delimiterSampleSize = 4096

// Options tune how a tabular resource is opened. Zero values mean
// auto-detection.
type Options struct {
	// Delimiter overrides delimiter detection when non-zero.
	Delimiter rune
	// Encoding is tried first in the decode fallback chain, e.g. "utf-8",
	// "latin-1", "windows-1252".
	Encoding string
}

// Table is a fully read tabular resource: trimmed headers plus raw string
// rows, before any field mapping or coercion.
type Table struct {
	Name      string
	Headers   []string
	Rows      [][]string
	Delimiter rune
}

// Open reads a delimited file, a gzip-compressed delimited file, or an xlsx
// workbook into a Table. A missing file or an undecodable payload is a
// structural error.
func Open(path string, opts Options) (*Table, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource: %w", err)
	}

	name := filepath.Base(path)
	if strings.EqualFold(filepath.Ext(name), ".gz") {
		payload, err = gunzip(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress %s: %w", name, err)
		}
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}

	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		return openExcel(name, payload)
	}
	return openDelimited(name, payload, opts)
}

func gunzip(payload []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer func() { _ = zr.Close() }()
	return io.ReadAll(zr)
}

func openExcel(name string, payload []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("xlsx resource has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from xlsx: %w", err)
	}
	return tableFromRows(name, rows, 0)
}

func openDelimited(name string, payload []byte, opts Options) (*Table, error) {
	text, err := decodeText(payload, opts.Encoding)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	delimiter := opts.Delimiter
	if delimiter == 0 {
		delimiter = DetectDelimiter(text)
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delimiter
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return tableFromRows(name, records, delimiter)
}

func tableFromRows(name string, records [][]string, delimiter rune) (*Table, error) {
	var headers []string
	var rows [][]string
	for _, row := range records {
		empty := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}
		if headers == nil {
			headers = make([]string, len(row))
			for i, cell := range row {
				headers[i] = strings.TrimSpace(cell)
			}
			continue
		}
		rows = append(rows, row)
	}
	if headers == nil {
		return nil, fmt.Errorf("no header row found in %s", name)
	}
	return &Table{Name: name, Headers: headers, Rows: rows, Delimiter: delimiter}, nil
}

// DetectDelimiter counts the candidate delimiters over the first few KB of
// content and picks the most frequent one. Comma wins ties, matching the
// candidate order.
func DetectDelimiter(sample string) rune {
	if len(sample) > delimiterSampleSize {
		sample = sample[:delimiterSampleSize]
	}

	best := ','
	bestCount := -1
	for _, candidate := range []rune{',', ';', '\t', '|'} {
		count := strings.Count(sample, string(candidate))
		if count > bestCount {
			best = candidate
			bestCount = count
		}
	}
	return best
}

// decodeText tries a fixed ordered list of encodings: the configured default,
// UTF-8 with optional byte-order mark, then ISO-8859-1 and Windows-1252. The
// first encoding that decodes without error wins.
func decodeText(payload []byte, preferred string) (string, error) {
	chain := []string{"utf-8", "latin-1", "windows-1252"}
	if canonical := canonicalEncoding(preferred); canonical != "" {
		chain = append([]string{canonical}, chain...)
	}

	tried := map[string]bool{}
	for _, name := range chain {
		if tried[name] {
			continue
		}
		tried[name] = true
		if text, err := decodeAs(payload, name); err == nil {
			return text, nil
		}
	}
	return "", ErrUndecodable
}

func canonicalEncoding(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return ""
	case "utf-8", "utf8", "utf-8-sig":
		return "utf-8"
	case "latin-1", "latin1", "iso-8859-1":
		return "latin-1"
	case "windows-1252", "cp1252":
		return "windows-1252"
	default:
		// Unknown names fall back to the default chain.
		return ""
	}
}

func decodeAs(payload []byte, name string) (string, error) {
	switch name {
	case "utf-8":
		trimmed := bytes.TrimPrefix(payload, byteOrderMark)
		if !utf8.Valid(trimmed) {
			return "", fmt.Errorf("invalid utf-8 payload")
		}
		return string(trimmed), nil
	case "latin-1":
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(payload)
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	case "windows-1252":
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(payload)
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	default:
		return "", fmt.Errorf("unsupported encoding %q", name)
	}
}
