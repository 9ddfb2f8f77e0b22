package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// WriteCSV writes rows with a header line to path, overwriting any
// existing file.
func WriteCSV(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, row := range rows {
		record := make([]string, len(Columns))
		for i, v := range row.values() {
			switch val := v.(type) {
			case string:
				record[i] = val
			case bool:
				record[i] = strconv.FormatBool(val)
			default:
				record[i] = fmt.Sprintf("%v", val)
			}
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}
