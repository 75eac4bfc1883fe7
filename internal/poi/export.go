package poi

import (
	"encoding/csv"
	"io"
	"strconv"
)

// utf8BOM makes spreadsheet tools detect the encoding of exported files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes the result set as UTF-8 comma-delimited text with a BOM,
// one row per POI.
func WriteCSV(w io.Writer, pois []POI) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "category", "distance_m", "address"}); err != nil {
		return err
	}
	for _, p := range pois {
		row := []string{
			p.Name,
			p.Category,
			strconv.FormatFloat(p.DistanceM, 'f', 1, 64),
			p.Address,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
