package tasks

import (
	"strings"
	"testing"
)

func TestParseImportFile(t *testing.T) {
	t.Parallel()

	t.Run("headers and rows", func(t *testing.T) {
		t.Parallel()
		headers, rows, err := parseImportFile([]byte("name, industry ,contactEmail\nAcme,Tech,ops@acme.test\nGlobex,,"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(headers) != 3 || headers[1] != "industry" {
			t.Errorf("headers = %v, want trimmed names", headers)
		}
		if len(rows) != 2 || rows[0][0] != "Acme" {
			t.Errorf("rows = %v", rows)
		}
	})

	t.Run("ragged rows are tolerated", func(t *testing.T) {
		t.Parallel()
		_, rows, err := parseImportFile([]byte("name,industry\nAcme\nGlobex,Energy,extra"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 2 {
			t.Errorf("rows = %v", rows)
		}
	})

	t.Run("header only file is rejected", func(t *testing.T) {
		t.Parallel()
		if _, _, err := parseImportFile([]byte("name,industry\n")); err == nil {
			t.Fatal("want error for file without data rows")
		}
	})

	t.Run("empty header column is rejected", func(t *testing.T) {
		t.Parallel()
		_, _, err := parseImportFile([]byte("name,,industry\nAcme,x,y"))
		if err == nil || !strings.Contains(err.Error(), "column 2") {
			t.Fatalf("err = %v, want empty header rejection", err)
		}
	})
}
