// Package datasets defines the descriptor shared by all dataset
// adapters and the fetch options common to every dataset.
//
// Each public-safety dataset has its own subpackage supplying the
// endpoint identity, field-name mappings, and filter vocabulary:
//
//   - [incidents]: police incidents (RMS)
//   - [arrests]: police arrests
//   - [charges]: police arrest charges
//   - [shootings]: officer-involved shootings
//   - [useofforce]: response-to-resistance, one endpoint per year
//
// Adapters translate their typed filter arguments into a SoQL query and
// delegate retrieval to the generic paginated fetcher in [soda].
//
// [incidents]: github.com/civicdata/dallaspd/pkg/datasets/incidents
// [arrests]: github.com/civicdata/dallaspd/pkg/datasets/arrests
// [charges]: github.com/civicdata/dallaspd/pkg/datasets/charges
// [shootings]: github.com/civicdata/dallaspd/pkg/datasets/shootings
// [useofforce]: github.com/civicdata/dallaspd/pkg/datasets/useofforce
// [soda]: github.com/civicdata/dallaspd/pkg/soda
package datasets

import (
	"net/url"
	"strings"

	"github.com/civicdata/dallaspd/pkg/soda"
)

// Dataset describes one portal endpoint: its four-by-four identifier,
// the field used for date filtering, optional projected-coordinate
// columns, and the default field lists for post-fetch cleaning.
// Descriptors are immutable package-level values defined at build time.
type Dataset struct {
	Name       string   // logical dataset name (e.g., "incidents")
	ID         string   // portal four-by-four endpoint identifier
	DateField  string   // column used for date-range filtering
	XColumn    string   // projected X coordinate column, if any
	YColumn    string   // projected Y coordinate column, if any
	TextFields []string // default text-cleaning fields
	DateFields []string // default date-parsing fields
}

// Common holds the fetch arguments every dataset adapter accepts.
type Common struct {
	// StartDate and EndDate bound the dataset's date field to an
	// inclusive calendar-day range. Format YYYY-MM-DD; either may be
	// empty for an open-ended range.
	StartDate string
	EndDate   string

	// Where is a raw SoQL filter expression. When set it fully replaces
	// the structured filter arguments, whose presence is reported as a
	// warning rather than an error.
	Where string

	// Limit caps the number of rows retrieved. Zero applies
	// [soda.DefaultLimit]; [soda.Unlimited] retrieves every match.
	Limit int

	// Select restricts the returned columns.
	Select []string

	// Params are additional query parameters passed through verbatim
	// (e.g., an $order clause).
	Params url.Values
}

// EffectiveLimit resolves the zero-value default.
func (c Common) EffectiveLimit() int {
	if c.Limit == 0 {
		return soda.DefaultLimit
	}
	return c.Limit
}

// Build produces the final query for ds. The builder b carries clauses
// from the adapter's structured filters and structured names the filter
// arguments the caller supplied. A raw Where expression wins over the
// builder; the ignored arguments are reported through logf.
func (c Common) Build(ds Dataset, b *soda.WhereBuilder, structured []string, logf func(string, ...any)) (soda.Query, int, error) {
	q := soda.Query{Select: c.Select, Params: c.Params}

	if c.Where != "" {
		names := c.suppliedNames(structured)
		if len(names) > 0 {
			logf("custom filter expression supplied; ignoring %s", strings.Join(names, ", "))
		}
		q.Where = c.Where
		return q, c.EffectiveLimit(), nil
	}

	if c.StartDate != "" || c.EndDate != "" {
		if err := b.DateRange(ds.DateField, c.StartDate, c.EndDate); err != nil {
			return soda.Query{}, 0, err
		}
	}
	q.Where = b.String()
	return q, c.EffectiveLimit(), nil
}

func (c Common) suppliedNames(structured []string) []string {
	var names []string
	if c.StartDate != "" {
		names = append(names, "start date")
	}
	if c.EndDate != "" {
		names = append(names, "end date")
	}
	return append(names, structured...)
}
