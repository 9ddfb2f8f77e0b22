// Package ids reads company identifiers from CSV input files.
package ids

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"companyfetch/pkg/model"
)

// ReadCSV reads the named column from a CSV file with a header row and
// returns one identifier per data row, in file order. Numeric values
// coerce to integer identifiers; anything else stays a string.
func ReadCSV(path, column string) ([]model.ID, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open id file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	col := -1
	for i, name := range header {
		if name == column {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("column %q not found in %s", column, path)
	}

	var out []model.ID
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if col >= len(row) {
			continue
		}
		out = append(out, model.IDFromString(row[col]))
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no identifiers in %s", path)
	}
	return out, nil
}
