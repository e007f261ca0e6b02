package exportfile

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"ticket-dashboard/internal/domain"
)

const sheetName = "Tickets"

func writeXLSX(view domain.FilteredView) ([]byte, error) {
	wb := excelize.NewFile()
	defer func() { _ = wb.Close() }()

	if err := wb.SetSheetName(wb.GetSheetName(0), sheetName); err != nil {
		return nil, err
	}

	if err := writeRow(wb, 1, exportHeader); err != nil {
		return nil, err
	}
	for i, t := range view {
		if err := writeRow(wb, i+2, ticketRow(t)); err != nil {
			return nil, err
		}
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRow(wb *excelize.File, rowNum int, cells []string) error {
	row := make([]interface{}, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("invalid row %d: %w", rowNum, err)
	}
	return wb.SetSheetRow(sheetName, cell, &row)
}
