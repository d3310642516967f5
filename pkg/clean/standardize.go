package clean

import (
	"regexp"
	"strconv"

	"github.com/civicdata/dallaspd/pkg/soda"
)

// divisionLevels is the fixed enumeration of patrol divisions, in the
// department's conventional order. Every standardized division column
// carries exactly these levels.
var divisionLevels = []string{
	"central",
	"northeast",
	"northwest",
	"southeast",
	"southwest",
	"north central",
	"south central",
}

// Normalized variants observed in the data, mapped to canonical levels.
// Canonical values map to themselves so standardization is idempotent.
var divisionVariants = map[string]string{
	"central":       "central",
	"northeast":     "northeast",
	"north east":    "northeast",
	"ne":            "northeast",
	"northwest":     "northwest",
	"north west":    "northwest",
	"nw":            "northwest",
	"southeast":     "southeast",
	"south east":    "southeast",
	"se":            "southeast",
	"southwest":     "southwest",
	"south west":    "southwest",
	"sw":            "southwest",
	"north central": "north central",
	"northcentral":  "north central",
	"nc":            "north central",
	"south central": "south central",
	"southcentral":  "south central",
	"sc":            "south central",
}

// StandardizeDivision maps the values of col onto the seven canonical
// patrol divisions. Values that fail to map become nil, and the count
// of such values (excluding originally missing or empty ones) is
// returned and reported as a warning. The column is rewritten with
// canonical values, so applying the function twice is a no-op.
func StandardizeDivision(tbl soda.Table, col string, opts Options) (Factor, int) {
	return standardize(tbl, col, opts, divisionLevels, func(norm string) (string, bool) {
		canonical, ok := divisionVariants[norm]
		return canonical, ok
	})
}

const maxDistrict = 14

// districtLevels is the fixed enumeration of council districts.
var districtLevels = func() []string {
	levels := make([]string, maxDistrict)
	for i := range levels {
		levels[i] = strconv.Itoa(i + 1)
	}
	return levels
}()

// districtSuffix extracts a trailing one- or two-digit number from
// spellings like "district 5", "dist 12", or "d7".
var districtSuffix = regexp.MustCompile(`(\d{1,2})\s*$`)

// StandardizeDistrict maps the values of col onto the canonical council
// district numbers "1" through "14". Lookup is two-tier: plain numbers
// (with or without a leading zero) match directly, then a trailing
// number is extracted from prefixed spellings. Same contract as
// [StandardizeDivision].
func StandardizeDistrict(tbl soda.Table, col string, opts Options) (Factor, int) {
	return standardize(tbl, col, opts, districtLevels, canonicalDistrict)
}

func canonicalDistrict(norm string) (string, bool) {
	if n, err := strconv.Atoi(norm); err == nil {
		return districtNumber(n)
	}
	if m := districtSuffix.FindStringSubmatch(norm); m != nil {
		n, _ := strconv.Atoi(m[1])
		return districtNumber(n)
	}
	return "", false
}

func districtNumber(n int) (string, bool) {
	if n < 1 || n > maxDistrict {
		return "", false
	}
	return strconv.Itoa(n), true
}

// standardize rewrites col through mapper and builds the resulting
// factor over the full canonical level set. Originally missing or empty
// values never count as unmapped.
func standardize(tbl soda.Table, col string, opts Options, levels []string, mapper func(string) (string, bool)) (Factor, int) {
	opts = opts.WithDefaults()

	if !hasColumn(tbl, col) {
		warnAbsent(tbl, opts, col)
		return Factor{levels: levels}, 0
	}

	values := make([]any, len(tbl))
	unmapped := 0
	for i, row := range tbl {
		s, ok := row[col].(string)
		if !ok {
			row[col] = nil
			continue
		}
		norm := Normalize(s)
		if norm == "" {
			row[col] = nil
			continue
		}
		canonical, ok := mapper(norm)
		if !ok {
			row[col] = nil
			unmapped++
			continue
		}
		row[col] = canonical
		values[i] = canonical
	}
	if unmapped > 0 {
		opts.Logger("%d value(s) in %q could not be standardized", unmapped, col)
	}
	return newFactor(levels, values), unmapped
}
