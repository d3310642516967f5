package clean

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/civicdata/dallaspd/pkg/soda"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"CENTRAL", "central"},
		{"  South West  ", "south west"},
		{"north\t\ncentral", "north central"},
		{"already clean", "already clean"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"  MIXED  Case\tRuns ", "central", "D 14"}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}

func TestClean_TextFields(t *testing.T) {
	tbl := soda.Table{
		{"division": "  CENTRAL  ", "beat": "114"},
		{"division": "South   West", "beat": "121"},
	}
	Clean(tbl, Options{TextFields: []string{"division"}})

	if tbl[0]["division"] != "central" || tbl[1]["division"] != "south west" {
		t.Errorf("text fields not normalized: %v", tbl)
	}
	if tbl[0]["beat"] != "114" {
		t.Errorf("unconfigured field modified: %v", tbl[0]["beat"])
	}
}

func TestClean_DateFields(t *testing.T) {
	tbl := soda.Table{
		{"date1": "2023-03-15T14:30:00.000"},
		{"date1": "2023-03-15T14:30:00"},
		{"date1": "2023-03-15"},
		{"date1": "not a date"},
		{"date1": nil},
	}
	Clean(tbl, Options{DateFields: []string{"date1"}})

	chicago, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Skipf("zone database unavailable: %v", err)
	}
	want := time.Date(2023, 3, 15, 14, 30, 0, 0, chicago)
	for i := 0; i < 2; i++ {
		ts, ok := tbl[i]["date1"].(time.Time)
		if !ok || !ts.Equal(want) {
			t.Errorf("row %d: got %v, want %v", i, tbl[i]["date1"], want)
		}
	}
	if ts, ok := tbl[2]["date1"].(time.Time); !ok || ts.Day() != 15 {
		t.Errorf("date-only value not parsed: %v", tbl[2]["date1"])
	}
	if tbl[3]["date1"] != nil {
		t.Errorf("unparseable date should become nil, got %v", tbl[3]["date1"])
	}
	if tbl[4]["date1"] != nil {
		t.Errorf("nil should stay nil, got %v", tbl[4]["date1"])
	}
}

func TestClean_AbsentFieldWarns(t *testing.T) {
	tbl := soda.Table{{"division": "CENTRAL"}}

	var logs []string
	Clean(tbl, Options{
		TextFields: []string{"division", "no_such_field"},
		Logger: func(format string, args ...any) {
			logs = append(logs, fmt.Sprintf(format, args...))
		},
	})

	if tbl[0]["division"] != "central" {
		t.Errorf("present field not cleaned: %v", tbl[0])
	}
	if len(logs) != 1 || !strings.Contains(logs[0], "no_such_field") {
		t.Errorf("expected a warning naming the absent field, got %v", logs)
	}
}

func TestClean_NonStringValuesUntouched(t *testing.T) {
	tbl := soda.Table{{"division": 7.0}}
	Clean(tbl, Options{TextFields: []string{"division"}})
	if tbl[0]["division"] != 7.0 {
		t.Errorf("non-string value modified: %v", tbl[0]["division"])
	}
}

func TestClean_EmptyTable(t *testing.T) {
	var logs []string
	Clean(soda.Table{}, Options{
		TextFields: []string{"division"},
		Logger: func(format string, args ...any) {
			logs = append(logs, fmt.Sprintf(format, args...))
		},
	})
	if len(logs) != 0 {
		t.Errorf("empty table should not warn about fields, got %v", logs)
	}
}
