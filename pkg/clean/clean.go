// Package clean provides post-fetch cleaning for open-data tables:
// whitespace/case normalization of text columns, timezone-aware date
// parsing, and standardization of the free-text categorical columns
// (patrol divisions, council districts) the portal never validated.
//
// Cleaning is lossy on purpose. Values that cannot be parsed or mapped
// become nil so downstream aggregation sees a uniform missing marker
// instead of fourteen spellings of the same division.
package clean

import (
	"regexp"
	"strings"
	"time"

	"github.com/civicdata/dallaspd/pkg/soda"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Normalize lowercases s, trims surrounding whitespace, and collapses
// internal whitespace runs to single spaces. Idempotent.
func Normalize(s string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(strings.ToLower(s)), " ")
}

// Date formats observed across the datasets, tried in order.
var dateFormats = []string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Options configures [Clean] and the standardization functions.
type Options struct {
	// TextFields are normalized in place. Dataset packages export
	// suitable defaults on their descriptors.
	TextFields []string

	// DateFields are parsed into time.Time values in Location.
	DateFields []string

	// Location is the zone applied to the portal's floating timestamps.
	// Nil defaults to the city's zone, America/Chicago.
	Location *time.Location

	// Logger receives warnings about absent fields and unmapped values.
	Logger func(string, ...any)
}

// WithDefaults fills unset options.
func (o Options) WithDefaults() Options {
	if o.Location == nil {
		loc, err := time.LoadLocation("America/Chicago")
		if err != nil {
			loc = time.FixedZone("CST", -6*60*60)
		}
		o.Location = loc
	}
	if o.Logger == nil {
		o.Logger = func(string, ...any) {}
	}
	return o
}

// Clean normalizes the configured text fields and parses the configured
// date fields of tbl in place, returning tbl for chaining.
//
// A configured field absent from every row is skipped with a warning
// naming it; a present field whose value is not a string is left
// untouched. Unparseable dates become nil.
func Clean(tbl soda.Table, opts Options) soda.Table {
	opts = opts.WithDefaults()

	for _, field := range opts.TextFields {
		if !hasColumn(tbl, field) {
			warnAbsent(tbl, opts, field)
			continue
		}
		for _, row := range tbl {
			if s, ok := row[field].(string); ok {
				row[field] = Normalize(s)
			}
		}
	}

	for _, field := range opts.DateFields {
		if !hasColumn(tbl, field) {
			warnAbsent(tbl, opts, field)
			continue
		}
		for _, row := range tbl {
			s, ok := row[field].(string)
			if !ok {
				continue
			}
			if ts, ok := parseDate(s, opts.Location); ok {
				row[field] = ts
			} else {
				row[field] = nil
			}
		}
	}
	return tbl
}

func parseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, format := range dateFormats {
		if ts, err := time.ParseInLocation(format, s, loc); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func hasColumn(tbl soda.Table, field string) bool {
	for _, row := range tbl {
		if _, ok := row[field]; ok {
			return true
		}
	}
	return false
}

func warnAbsent(tbl soda.Table, opts Options, field string) {
	if len(tbl) > 0 {
		opts.Logger("field %q not present in result; skipping", field)
	}
}
