package excelize

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const templateSheet = "Sources"

var templateRows = [][]string{
	{"https://news.google.com/search?q=Separator&hl=en", "TRUE", "google_news", "WAIT", "NONE", "", "edge"},
	{"https://www.reuters.com/site-search/?query=Separator", "TRUE", "REUTERS_SEARCH", "INFINITE_SCROLL", "SEARCH_Q", "", "edge"},
	{"https://www.argusmedia.com/en/search?q=Separator", "FALSE", "ARGUS_MEDIA_SEARCH", "WAIT", "SEARCH_Q", "", "edge"},
	{"https://www.bing.com/news/search?q=Separator", "TRUE", "BING_NEWS_SEARCH", "WAIT", "SEARCH_Q", "", "edge"},
	{"https://batteriesnews.com/?s=Separator", "TRUE", "BATTERIES_NEWS_SEARCH", "WAIT", "SEARCH_Q", "", "http"},
}

var templateWidths = []float64{65, 12, 22, 18, 15, 15, 10}

// WriteTemplate saves a starter source table with a styled header and
// sample rows to path.
func WriteTemplate(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", templateSheet); err != nil {
		return err
	}

	for i, h := range Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(templateSheet, cell, h); err != nil {
			return fmt.Errorf("failed to set header %s: %w", h, err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(Columns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(templateSheet, "A1", last, style); err != nil {
		return err
	}

	for r, row := range templateRows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(templateSheet, cell, v); err != nil {
				return fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	for i, w := range templateWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(templateSheet, col, col, w); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
