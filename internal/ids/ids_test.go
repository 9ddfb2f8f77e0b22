package ids

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ids.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeCSV(t, "id,name\n42,Acme\n1337,Globex\nacme-co,Initech\n")

	got, err := ReadCSV(path, "id")
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("count = %d, want 3", len(got))
	}
	if n, ok := got[0].Int64(); !ok || n != 42 {
		t.Errorf("got[0] = %v, want numeric 42", got[0])
	}
	if got[2].IsNumeric() || got[2].String() != "acme-co" {
		t.Errorf("got[2] = %v, want string acme-co", got[2])
	}
}

func TestReadCSV_ColumnSelection(t *testing.T) {
	path := writeCSV(t, "name,duns\nAcme,123456789\nGlobex,987654321\n")

	got, err := ReadCSV(path, "duns")
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if len(got) != 2 || got[0].String() != "123456789" {
		t.Errorf("got = %v, want the duns column", got)
	}
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		column  string
	}{
		{name: "missing column", content: "id,name\n1,Acme\n", column: "duns"},
		{name: "header only", content: "id\n", column: "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCSV(t, tt.content)
			if _, err := ReadCSV(path, tt.column); err == nil {
				t.Error("ReadCSV succeeded, want error")
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		if _, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"), "id"); err == nil {
			t.Error("ReadCSV succeeded, want error")
		}
	})
}
