package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"

	"gridlens/internal/model"
)

// ToCSV writes rows under the grid's column order. Cell values use the
// grid's display normalization so an exported file matches what was on
// screen.
func ToCSV(path string, columns []model.Column, rows []model.Row) error {
	if len(rows) == 0 {
		return errors.New("no rows")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()
	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = c.Key
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		rec := make([]string, len(columns))
		for i, c := range columns {
			rec[i] = model.DisplayValue(row[c.Key])
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// ToNDJSON writes the raw rows, one JSON object per line, including
// non-column fields (full drill-down context survives a round trip).
func ToNDJSON(path string, rows []model.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	bw := bufio.NewWriter(f)
	defer bw.Flush()
	for _, row := range rows {
		b, err := json.Marshal(row)
		if err != nil {
			return err
		}
		if _, err := bw.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	return nil
}
