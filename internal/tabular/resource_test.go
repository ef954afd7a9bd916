package tabular

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"
)

func TestDetectDelimiter(t *testing.T) {
	cases := []struct {
		sample string
		want   rune
	}{
		{"a,b,c\n1,2,3", ','},
		{"a;b;c\n1;2;3", ';'},
		{"a\tb\tc\n1\t2\t3", '\t'},
		{"a|b|c\n1|2|3", '|'},
		// Ties and empty samples fall back to comma.
		{"nothing here", ','},
	}
	for _, tc := range cases {
		if got := DetectDelimiter(tc.sample); got != tc.want {
			t.Fatalf("sample %q: expected %q, got %q", tc.sample, tc.want, got)
		}
	}
}

func TestOpenDelimitedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	content := "VBELN;NETWR\n0000000001;1500.50\n0000000002;2000\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	table, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("open returned error: %v", err)
	}
	if table.Delimiter != ';' {
		t.Fatalf("expected detected delimiter ';', got %q", table.Delimiter)
	}
	if len(table.Headers) != 2 || table.Headers[0] != "VBELN" {
		t.Fatalf("unexpected headers: %v", table.Headers)
	}
	if len(table.Rows) != 2 || table.Rows[0][0] != "0000000001" {
		t.Fatalf("unexpected rows: %v", table.Rows)
	}
}

func TestOpenGzipFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv.gz")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	zw := gzip.NewWriter(file)
	if _, err := zw.Write([]byte("VBELN,NETWR\n1,2\n")); err != nil {
		t.Fatalf("failed to write gzip payload: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close gzip writer: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("failed to close test file: %v", err)
	}

	table, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("open returned error: %v", err)
	}
	if len(table.Rows) != 1 || table.Rows[0][0] != "1" {
		t.Fatalf("unexpected rows: %v", table.Rows)
	}
}

func TestOpenLatinOneFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parties.csv")
	// 0xE9 is é in latin-1 and invalid on its own in utf-8.
	content := append([]byte("KUNNR,NAME\n1,Caf"), 0xE9, '\n')
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	table, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("open returned error: %v", err)
	}
	if table.Rows[0][1] != "Café" {
		t.Fatalf("expected latin-1 fallback to decode Café, got %q", table.Rows[0][1])
	}
}

func TestOpenPreferredWindows1252(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parties.csv")
	// 0x9C is œ in windows-1252 but a control character in latin-1, so the
	// right reading depends on the preferred encoding being honored.
	content := append([]byte("KUNNR,NAME\n1,C"), 0x9C, 'u', 'r', '\n')
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	table, err := Open(path, Options{Encoding: "cp1252"})
	if err != nil {
		t.Fatalf("open returned error: %v", err)
	}
	if table.Rows[0][1] != "Cœur" {
		t.Fatalf("expected windows-1252 decoding of Cœur, got %q", table.Rows[0][1])
	}
}

func TestOpenStripsByteOrderMark(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("VBELN\n1\n")...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	table, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("open returned error: %v", err)
	}
	if table.Headers[0] != "VBELN" {
		t.Fatalf("expected BOM stripped from first header, got %q", table.Headers[0])
	}
}

func TestOpenSkipsEmptyRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	content := "VBELN,NETWR\n\n1,2\n,\n2,3\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	table, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("open returned error: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows after skipping empties, got %d", len(table.Rows))
	}
}
