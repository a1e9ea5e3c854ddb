// Package csvio converts thread catalogues to and from comma-separated text.
package csvio

import (
	"fmt"
	"io"
	"strings"

	"github.com/stitchbook-dev/stitchbook/internal/types"
)

const (
	DefaultHex = "#000000"

	byteOrderMark = "\ufeff"

	fieldCode  = "code"
	fieldName  = "name"
	fieldHex   = "hex"
	fieldOwned = "owned"
)

// Parser turns an uploaded file into thread records ready for insertion.
type Parser interface {
	Parse(r io.Reader) ([]types.ThreadInput, error)
}

// HeaderAliases maps a lower-cased, trimmed header cell to its thread field.
// Columns not listed here (R, G, B, ...) are ignored.
var HeaderAliases = map[string]string{
	"floss":       fieldCode,
	"code":        fieldCode,
	"dmc":         fieldCode,
	"number":      fieldCode,
	"thread":      fieldCode,
	"dmc name":    fieldName,
	"name":        fieldName,
	"color name":  fieldName,
	"description": fieldName,
	"hex":         fieldHex,
	"hex code":    fieldHex,
	"color":       fieldHex,
	"colour":      fieldHex,
	"owned":       fieldOwned,
	"have":        fieldOwned,
	"in stock":    fieldOwned,
}

// LineParser splits rows on newlines and cells on every comma. Quoted
// fields are not supported: a comma inside quotes still splits the cell.
type LineParser struct{}

var _ Parser = LineParser{}

func (LineParser) Parse(r io.Reader) ([]types.ThreadInput, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}

	// Spreadsheet "CSV UTF-8" exports start with a byte order mark.
	text := strings.TrimPrefix(string(data), byteOrderMark)

	lines := strings.Split(text, "\n")

	headerAt := -1
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return []types.ThreadInput{}, nil
	}

	columns := mapHeader(lines[headerAt])

	records := make([]types.ThreadInput, 0, len(lines)-headerAt-1)
	for _, line := range lines[headerAt+1:] {
		rec, ok := parseRow(line, columns)
		if !ok {
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

// mapHeader returns, per column index, the field it feeds or "" when the
// column is ignored. The first column claiming a field wins.
func mapHeader(line string) []string {
	cells := strings.Split(line, ",")
	columns := make([]string, len(cells))
	seen := make(map[string]bool, 4)

	for i, cell := range cells {
		field, ok := HeaderAliases[strings.ToLower(strings.TrimSpace(cell))]
		if !ok || seen[field] {
			continue
		}
		seen[field] = true
		columns[i] = field
	}

	return columns
}

func parseRow(line string, columns []string) (types.ThreadInput, bool) {
	cells := strings.Split(line, ",")
	values := make(map[string]string, 4)

	for i, field := range columns {
		if field == "" || i >= len(cells) {
			continue
		}
		values[field] = strings.TrimSpace(cells[i])
	}

	code := values[fieldCode]
	if code == "" {
		return types.ThreadInput{}, false
	}

	return types.ThreadInput{
		Code:  code,
		Name:  values[fieldName],
		Hex:   normalizeHex(values[fieldHex]),
		Owned: parseOwned(values[fieldOwned]),
	}, true
}

func normalizeHex(v string) string {
	if v == "" {
		return DefaultHex
	}
	if !strings.HasPrefix(v, "#") {
		return "#" + v
	}
	return v
}

func parseOwned(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}
