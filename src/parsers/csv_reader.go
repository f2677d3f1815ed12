// backend/src/parsers/csv_reader.go
package parsers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/username/tradejournal/backend/src/models"
	"github.com/username/tradejournal/backend/src/security/validation"
)

var ErrEmptyFile = errors.New("file contains no header row")

var candidateDelimiters = []rune{',', ';', '\t'}

// ReadTable reads a delimited export into a header row and data rows.
// The delimiter is sniffed from the first line; a UTF-8 BOM and control
// characters are dropped and non-breaking spaces become plain spaces.
func ReadTable(r io.Reader) (models.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return models.Table{}, fmt.Errorf("failed to read file: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	text := validation.StripUnprintable(strings.ReplaceAll(string(data), "\u00a0", " "))
	if strings.TrimSpace(text) == "" {
		return models.Table{}, ErrEmptyFile
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = sniffDelimiter(text)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	// encoding/csv trims a whitespace delimiter too, which would swallow empty tab-separated cells
	reader.TrimLeadingSpace = reader.Comma != '\t'

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return models.Table{}, ErrEmptyFile
		}
		return models.Table{}, fmt.Errorf("failed to read CSV header: %w", err)
	}
	records, err := reader.ReadAll()
	if err != nil {
		return models.Table{}, fmt.Errorf("failed to read all CSV records: %w", err)
	}
	return models.Table{Headers: headers, Rows: records}, nil
}

// sniffDelimiter picks the candidate occurring most often in the first line, outside quotes.
func sniffDelimiter(text string) rune {
	line := text
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		line = text[:i]
	}
	counts := make(map[rune]int, len(candidateDelimiters))
	inQuotes := false
	for _, r := range line {
		if r == '"' {
			inQuotes = !inQuotes
			continue
		}
		if !inQuotes {
			counts[r]++
		}
	}
	best := ','
	for _, d := range candidateDelimiters {
		if counts[d] > counts[best] {
			best = d
		}
	}
	return best
}
