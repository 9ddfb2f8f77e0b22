package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"companyfetch/internal/testutil"
)

const testFragments = `{
	"fragments": [
		{
			"name": "base",
			"definition": "fragment Base on Company { displayName duns }",
			"query_string": "...Base"
		}
	]
}`

func writeTestFiles(t *testing.T, dir, apiURL string) string {
	t.Helper()

	// Neutralize environment overrides so the run only uses the test config.
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("REDIS_URL", "")

	fragmentsPath := filepath.Join(dir, "fragments.json")
	if err := os.WriteFile(fragmentsPath, []byte(testFragments), 0o644); err != nil {
		t.Fatalf("write fragments: %v", err)
	}

	idsPath := filepath.Join(dir, "ids.csv")
	if err := os.WriteFile(idsPath, []byte("id\n42\n43\n"), 0o644); err != nil {
		t.Fatalf("write ids: %v", err)
	}

	outPath := filepath.Join(dir, "out.csv")
	configPath := filepath.Join(dir, "config.yaml")
	config := fmt.Sprintf(`api:
  baseUrl: %s
  apiKey: test-key
  fragmentsPath: %s
fetch:
  batchSize: 10
input:
  idFile: %s
export:
  csvPath: %s
logging:
  level: error
`, apiURL, fragmentsPath, idsPath, outPath)
	if err := os.WriteFile(configPath, []byte(config), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return configPath
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	return rows
}

func TestRun_EndToEnd(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	mock.SetCompany("42", `{"displayName": "Globex Corporation", "duns": "123456789"}`)
	// 43 stays unknown; the run should still export the record for 42.

	dir := t.TempDir()
	configPath := writeTestFiles(t, dir, mock.URL())

	if err := run(context.Background(), configPath); err != nil {
		t.Fatalf("run: %v", err)
	}

	if got := mock.GetRequestCount(); got != 2 {
		t.Errorf("request count = %d, want 2", got)
	}

	rows := readRows(t, filepath.Join(dir, "out.csv"))
	if len(rows) != 2 { // header + the one resolved company
		t.Fatalf("exported %d rows, want 2 (header + 1 record)", len(rows))
	}

	header, record := rows[0], rows[1]
	byColumn := make(map[string]string, len(header))
	for i, col := range header {
		byColumn[col] = record[i]
	}
	if byColumn["display_name"] != "Globex Corporation" {
		t.Errorf("display_name = %q, want %q", byColumn["display_name"], "Globex Corporation")
	}
	if byColumn["duns"] != "123456789" {
		t.Errorf("duns = %q, want %q", byColumn["duns"], "123456789")
	}
}

func TestRun_AllFailuresStillWritesHeader(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	// No companies registered; every identifier resolves to an API error.

	dir := t.TempDir()
	configPath := writeTestFiles(t, dir, mock.URL())

	if err := run(context.Background(), configPath); err != nil {
		t.Fatalf("run: %v", err)
	}

	rows := readRows(t, filepath.Join(dir, "out.csv"))
	if len(rows) != 1 {
		t.Fatalf("exported %d rows, want header only", len(rows))
	}
}

func TestRun_MissingConfig(t *testing.T) {
	err := run(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config")
	}
}
