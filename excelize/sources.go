// Package excelize reads the operator's source table from an xlsx workbook.
package excelize

import (
	"context"
	"strings"

	"github.com/fwojciec/newsrank"
	"github.com/xuri/excelize/v2"
)

// Source table columns in their default order.
var Columns = []string{"Base_URL", "Is_Enabled", "Parser_Name", "Action_Name", "Search_Name", "Filter_Name", "Engine"}

const (
	colBaseURL = iota
	colEnabled
	colParser
	colAction
	colSearch
	colFilter
	colEngine
)

// Values used when a cell is empty.
const (
	DefaultAction = "WAIT"
	DefaultSearch = newsrank.NoKeywordSet
	DefaultEngine = newsrank.EngineBrowser
)

// Ensure SourceReader implements newsrank.SourceReader at compile time.
var _ newsrank.SourceReader = (*SourceReader)(nil)

// SourceReader reads source rows from the active sheet of a workbook.
type SourceReader struct {
	path string
}

// NewSourceReader creates a SourceReader for the workbook at path.
func NewSourceReader(path string) *SourceReader {
	return &SourceReader{path: path}
}

// ReadSources returns every row with a base URL, enabled or not.
// Returns ENOTFOUND if the workbook cannot be opened.
func (r *SourceReader) ReadSources(ctx context.Context) ([]newsrank.SourceRow, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, newsrank.Errorf(newsrank.ENOTFOUND, "open source table %s: %v", r.path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(f.GetActiveSheetIndex()))
	if err != nil {
		return nil, newsrank.Errorf(newsrank.EINVALID, "read source table %s: %v", r.path, err)
	}
	return ParseRows(rows), nil
}

// ParseRows converts sheet rows into source rows. The first row is the
// header; columns are found by name, case-insensitively. When any column
// is missing and the header is at least seven cells wide, the default
// column order is assumed instead.
func ParseRows(rows [][]string) []newsrank.SourceRow {
	if len(rows) == 0 {
		return nil
	}

	index := columnIndex(rows[0])

	var out []newsrank.SourceRow
	for _, row := range rows[1:] {
		cell := func(col int) string {
			i := index[col]
			if i < 0 || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		base := cell(colBaseURL)
		if base == "" {
			continue
		}
		out = append(out, newsrank.SourceRow{
			BaseURL:    base,
			Enabled:    strings.ToUpper(cell(colEnabled)) == "TRUE",
			ParserName: cell(colParser),
			Action:     orDefault(cell(colAction), DefaultAction),
			SearchName: orDefault(cell(colSearch), DefaultSearch),
			FilterName: cell(colFilter),
			Engine:     orDefault(cell(colEngine), DefaultEngine),
		})
	}
	return out
}

// columnIndex maps each column to its cell position in header.
func columnIndex(header []string) []int {
	index := make([]int, len(Columns))
	missing := false
	for col, name := range Columns {
		index[col] = -1
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				index[col] = i
				break
			}
		}
		if index[col] < 0 {
			missing = true
		}
	}

	if missing && len(header) >= len(Columns) {
		for col := range index {
			index[col] = col
		}
	}
	return index
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
