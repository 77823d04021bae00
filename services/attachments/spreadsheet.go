package attachments

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// spreadsheetHTML renders every sheet of a workbook, or a CSV file, as
// HTML tables.
func spreadsheetHTML(path, title string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return csvHTML(path, title)
	}
	return workbookHTML(path, title)
}

func workbookHTML(path, title string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", errors.Wrap(err, "open workbook")
	}
	defer f.Close()

	b := newHTMLBuilder(title)
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", errors.Wrapf(err, "read sheet %q", sheet)
		}
		b.element("h2", sheet)
		b.table(rows)
	}
	return b.String(), nil
}

func csvHTML(path, title string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "open csv")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return "", errors.Wrap(err, "read csv")
	}

	b := newHTMLBuilder(title)
	b.element("h2", title)
	b.table(rows)
	return b.String(), nil
}
