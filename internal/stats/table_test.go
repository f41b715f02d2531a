package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Metal", "Conductivity", "Turns"}
	rows := [][]string{
		{"iron", "0.17", "10"},
		{"aluminum", "0.61", "3"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Metal    Conductivity Turns" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "iron             0.17    10" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "aluminum         0.61     3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableCountsWideRunes(t *testing.T) {
	lines := formatTable([]string{"Icon", "Name"}, [][]string{{"💡", "First Light"}}, nil)
	if lines[1] != "💡   First Light" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
}
