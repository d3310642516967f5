package clean

import (
	"fmt"
	"strings"
	"testing"

	"github.com/civicdata/dallaspd/pkg/soda"
)

func divisionTable(values ...any) soda.Table {
	tbl := make(soda.Table, len(values))
	for i, v := range values {
		tbl[i] = soda.Row{"division": v}
	}
	return tbl
}

func TestStandardizeDivision(t *testing.T) {
	tbl := divisionTable("CENTRAL", " South West ", "unknownplace")

	var logs []string
	f, unmapped := StandardizeDivision(tbl, "division", Options{
		Logger: func(format string, args ...any) {
			logs = append(logs, fmt.Sprintf(format, args...))
		},
	})

	want := []any{"central", "southwest", nil}
	for i, w := range want {
		if tbl[i]["division"] != w {
			t.Errorf("row %d: got %v, want %v", i, tbl[i]["division"], w)
		}
	}
	if unmapped != 1 {
		t.Errorf("expected 1 unmapped value, got %d", unmapped)
	}
	if len(logs) != 1 || !strings.Contains(logs[0], "1 value(s)") {
		t.Errorf("expected an unmapped warning, got %v", logs)
	}

	levels := f.Levels()
	wantLevels := []string{
		"central", "northeast", "northwest", "southeast", "southwest",
		"north central", "south central",
	}
	if len(levels) != len(wantLevels) {
		t.Fatalf("expected the full level set %v, got %v", wantLevels, levels)
	}
	for i := range wantLevels {
		if levels[i] != wantLevels[i] {
			t.Fatalf("expected levels %v, got %v", wantLevels, levels)
		}
	}
	codes := f.Codes()
	if codes[0] != 0 || codes[1] != 4 || codes[2] != MissingCode {
		t.Errorf("unexpected codes %v", codes)
	}
}

func TestStandardizeDivision_LevelsFixedRegardlessOfData(t *testing.T) {
	// The level set is the fixed enumeration, not whatever happened to
	// be observed.
	tbl := divisionTable("CENTRAL")
	f, _ := StandardizeDivision(tbl, "division", Options{})
	if got := len(f.Levels()); got != 7 {
		t.Errorf("expected all 7 division levels for a single-value column, got %d: %v", got, f.Levels())
	}

	empty, _ := StandardizeDivision(divisionTable(), "division", Options{})
	if got := len(empty.Levels()); got != 7 {
		t.Errorf("expected all 7 division levels for an empty column, got %d", got)
	}
}

func TestStandardizeDivision_MissingNotCounted(t *testing.T) {
	// Originally null or empty values become missing but never count as
	// unmapped.
	tbl := divisionTable(nil, "", "   ", "northeast")

	_, unmapped := StandardizeDivision(tbl, "division", Options{})
	if unmapped != 0 {
		t.Errorf("expected 0 unmapped, got %d", unmapped)
	}
	for i := 0; i < 3; i++ {
		if tbl[i]["division"] != nil {
			t.Errorf("row %d should be nil, got %v", i, tbl[i]["division"])
		}
	}
	if tbl[3]["division"] != "northeast" {
		t.Errorf("row 3: got %v", tbl[3]["division"])
	}
}

func TestStandardizeDivision_Variants(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"North West", "northwest"},
		{"NORTH  CENTRAL", "north central"},
		{"southcentral", "south central"},
		{"NE", "northeast"},
		{"se", "southeast"},
	}
	for _, tt := range tests {
		tbl := divisionTable(tt.in)
		StandardizeDivision(tbl, "division", Options{})
		if tbl[0]["division"] != tt.want {
			t.Errorf("%q: got %v, want %q", tt.in, tbl[0]["division"], tt.want)
		}
	}
}

func TestStandardizeDivision_Idempotent(t *testing.T) {
	tbl := divisionTable("CENTRAL", "South West", "junk", nil)
	StandardizeDivision(tbl, "division", Options{})

	snapshot := make([]any, len(tbl))
	for i, row := range tbl {
		snapshot[i] = row["division"]
	}

	_, unmapped := StandardizeDivision(tbl, "division", Options{})
	if unmapped != 0 {
		t.Errorf("second pass should map everything, got %d unmapped", unmapped)
	}
	for i, row := range tbl {
		if row["division"] != snapshot[i] {
			t.Errorf("row %d changed on second pass: %v != %v", i, row["division"], snapshot[i])
		}
	}
}

func TestStandardizeDistrict(t *testing.T) {
	tbl := soda.Table{
		{"district": "1"},
		{"district": "07"},
		{"district": "District 5"},
		{"district": "dist 12"},
		{"district": "D14"},
		{"district": "district 15"}, // out of range
		{"district": "downtown"},
	}

	f, unmapped := StandardizeDistrict(tbl, "district", Options{})

	levels := f.Levels()
	if len(levels) != 14 || levels[0] != "1" || levels[13] != "14" {
		t.Errorf("expected districts 1-14 as the level set, got %v", levels)
	}

	want := []any{"1", "7", "5", "12", "14", nil, nil}
	for i, w := range want {
		if tbl[i]["district"] != w {
			t.Errorf("row %d: got %v, want %v", i, tbl[i]["district"], w)
		}
	}
	if unmapped != 2 {
		t.Errorf("expected 2 unmapped values, got %d", unmapped)
	}
}

func TestStandardizeDistrict_Idempotent(t *testing.T) {
	tbl := soda.Table{{"district": "District 9"}}
	StandardizeDistrict(tbl, "district", Options{})
	if tbl[0]["district"] != "9" {
		t.Fatalf("first pass: got %v", tbl[0]["district"])
	}
	_, unmapped := StandardizeDistrict(tbl, "district", Options{})
	if unmapped != 0 || tbl[0]["district"] != "9" {
		t.Errorf("second pass changed the value: %v (unmapped %d)", tbl[0]["district"], unmapped)
	}
}

func TestStandardize_AbsentColumn(t *testing.T) {
	tbl := soda.Table{{"beat": "114"}}

	var logs []string
	f, unmapped := StandardizeDivision(tbl, "division", Options{
		Logger: func(format string, args ...any) {
			logs = append(logs, fmt.Sprintf(format, args...))
		},
	})
	if unmapped != 0 || f.Len() != 0 {
		t.Errorf("absent column should standardize nothing, got %v / %d", f, unmapped)
	}
	if len(logs) != 1 {
		t.Errorf("expected an absent-column warning, got %v", logs)
	}
}

func TestFactorValue(t *testing.T) {
	tbl := divisionTable("central", nil, "northeast")
	f, _ := StandardizeDivision(tbl, "division", Options{})

	if v, ok := f.Value(0); !ok || v != "central" {
		t.Errorf("Value(0) = %q, %v", v, ok)
	}
	if _, ok := f.Value(1); ok {
		t.Error("Value(1) should be missing")
	}
	if _, ok := f.Value(99); ok {
		t.Error("out-of-range index should be missing")
	}
}
