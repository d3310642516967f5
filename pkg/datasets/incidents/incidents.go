// Package incidents fetches the Dallas police incidents dataset (RMS).
//
// Filters: date range on date1, plus membership filters on division,
// council district, and beat. The dataset carries projected state-plane
// coordinates; ConvertGeo attaches WGS84 positions after the fetch.
package incidents

import (
	"context"

	"github.com/civicdata/dallaspd/pkg/datasets"
	"github.com/civicdata/dallaspd/pkg/geo"
	"github.com/civicdata/dallaspd/pkg/soda"
)

// Descriptor identifies the incidents endpoint. The Y-coordinate column
// is misspelled in the upstream schema ("y_cordinate"); the misspelling
// is load-bearing and must not be corrected here.
var Descriptor = datasets.Dataset{
	Name:      "incidents",
	ID:        "qv6i-rri7",
	DateField: "date1",
	XColumn:   "x_coordinate",
	YColumn:   "y_cordinate",
	TextFields: []string{
		"division", "council_district", "beat", "premise", "offincident",
		"signal", "status", "ucr_disp",
	},
	DateFields: []string{"date1", "reporteddate", "upzdate"},
}

// Options are the fetch arguments for the incidents dataset.
type Options struct {
	datasets.Common

	// Divisions filters on the patrol division column. Values are matched
	// verbatim; use the distinct explorer to discover valid inputs.
	Divisions []string

	// Districts filters on the council district column. The column is
	// text, so values like "D1" and "1" are distinct inputs.
	Districts []string

	// Beats filters on the patrol beat column.
	Beats []string

	// ConvertGeo converts the dataset's projected coordinates to WGS84
	// positions after the fetch. Rows without usable coordinates are
	// dropped; see [geo.Convert].
	ConvertGeo bool
}

// Fetch retrieves incidents matching opts.
func Fetch(ctx context.Context, c *soda.Client, opts Options) (soda.Table, error) {
	var b soda.WhereBuilder
	var structured []string
	if len(opts.Divisions) > 0 {
		b.In("division", soda.Strings(opts.Divisions)...)
		structured = append(structured, "divisions")
	}
	if len(opts.Districts) > 0 {
		b.In("council_district", soda.Strings(opts.Districts)...)
		structured = append(structured, "districts")
	}
	if len(opts.Beats) > 0 {
		b.In("beat", soda.Strings(opts.Beats)...)
		structured = append(structured, "beats")
	}

	q, limit, err := opts.Build(Descriptor, &b, structured, c.Logf)
	if err != nil {
		return nil, err
	}

	if opts.ConvertGeo && len(q.Select) > 0 {
		q.Select = ensureCoordinateColumns(q.Select, c.Logf)
	}

	tbl, err := c.Fetch(ctx, Descriptor.ID, q, limit)
	if err != nil {
		return nil, err
	}
	if opts.ConvertGeo {
		tbl = geo.Convert(tbl, Descriptor.XColumn, Descriptor.YColumn, c.Logf)
	}
	return tbl, nil
}

// ensureCoordinateColumns force-adds the coordinate columns to a column
// restriction so a narrowed selection cannot silently break conversion.
func ensureCoordinateColumns(sel []string, logf func(string, ...any)) []string {
	var missing []string
	for _, col := range []string{Descriptor.XColumn, Descriptor.YColumn} {
		found := false
		for _, s := range sel {
			if s == col {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		logf("adding coordinate columns %v to selection for geographic conversion", missing)
		sel = append(append([]string(nil), sel...), missing...)
	}
	return sel
}
