package exportfile

import (
	"bytes"
	"encoding/csv"

	"ticket-dashboard/internal/domain"
)

func writeCSV(view domain.FilteredView) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, t := range view {
		if err := w.Write(ticketRow(t)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
