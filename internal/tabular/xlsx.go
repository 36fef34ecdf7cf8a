package tabular

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/mbzesq/npl-vision-2/internal/coerce"
)

// ReadWorkbook reads the first sheet of an XLSX workbook. The first row
// supplies the observed headers; every following row becomes a Row keyed by
// those headers. Cells arrive as display strings, so date columns must carry
// ISO dates to survive coercion.
func ReadWorkbook(r io.Reader) ([]string, []Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}
	all, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	headers := all[0]
	rows := make([]Row, 0, len(all)-1)
	for _, cells := range all[1:] {
		row := make(Row, len(headers))
		for i, header := range headers {
			if i < len(cells) {
				row[header] = coerce.String(cells[i])
			}
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}
