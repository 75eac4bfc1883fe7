package poi

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []POI{
		{Name: "Cafe A", Category: "cafe", DistanceM: 123.46, Address: "12, Phố Huế"},
		{Name: "(unnamed)", DistanceM: 9.0},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.Bytes()
	if !bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatal("expected UTF-8 BOM prefix")
	}

	lines := strings.Split(strings.TrimSpace(string(out[3:])), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "name,category,distance_m,address" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], "123.5") {
		t.Fatalf("expected rounded distance in %q", lines[1])
	}
	// Address contains a comma and must be quoted.
	if !strings.Contains(lines[1], `"12, Phố Huế"`) {
		t.Fatalf("expected quoted address in %q", lines[1])
	}
}
