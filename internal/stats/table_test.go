package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	cols := AlignRight(Columns("Game", "Win rate", "Played"), 1, 2)
	rows := [][]string{
		{"a", "97.50%", "12"},
		{"<space>", "8.00%", "3"},
	}

	lines := FormatTable(cols, rows)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Game    Win rate Played" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "a         97.50%     12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "<space>    8.00%      3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableMeasuresWideGlyphs(t *testing.T) {
	lines := FormatTable(Columns("Icon", "Name"), [][]string{{"🍎", "Pairs"}, {"ab", "Clock"}})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[1] != "🍎   Pairs" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "ab   Clock" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableShortAndLongRows(t *testing.T) {
	lines := FormatTable(AlignRight(Columns("A", "B"), 1, 5), [][]string{{"x"}, {"y", "22", "dropped"}})
	if lines[1] != "x   " {
		t.Fatalf("expected missing cell to pad, got %q", lines[1])
	}
	if lines[2] != "y 22" {
		t.Fatalf("expected extra cell to be dropped, got %q", lines[2])
	}
	if FormatTable(nil, [][]string{{"x"}}) != nil {
		t.Fatalf("expected no lines without columns")
	}
}
