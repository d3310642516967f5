// Package useofforce fetches the Dallas police response-to-resistance
// datasets. The city publishes one endpoint per year, and the 2020
// release renamed two columns, so the descriptor is resolved from a
// year argument rather than exported as a fixed value.
package useofforce

import (
	"context"

	"github.com/civicdata/dallaspd/pkg/datasets"
	"github.com/civicdata/dallaspd/pkg/errors"
	"github.com/civicdata/dallaspd/pkg/soda"
)

// Supported year range.
const (
	FirstYear = 2017
	LastYear  = 2020
)

var endpointByYear = map[int]string{
	2017: "f4dd-wzif",
	2018: "33un-ry7v",
	2019: "46zb-7qgj",
	2020: "nufk-2iqn",
}

// fieldNames returns the year-dependent column names. The 2020 release
// stopped truncating column names at ten characters.
func fieldNames(year int) (occurredDate, serviceType string) {
	if year >= 2020 {
		return "occurred_date", "service_type"
	}
	return "occurred_d", "service_ty"
}

// Descriptor resolves the endpoint and field names for year. Years
// outside [FirstYear, LastYear] fail with INVALID_ARGUMENT; no request
// is ever issued for them.
func Descriptor(year int) (datasets.Dataset, error) {
	id, ok := endpointByYear[year]
	if !ok {
		return datasets.Dataset{}, errors.New(errors.ErrCodeInvalidArgument,
			"no response-to-resistance dataset for year %d (available: %d-%d)", year, FirstYear, LastYear)
	}
	occurred, service := fieldNames(year)
	return datasets.Dataset{
		Name:       "useofforce",
		ID:         id,
		DateField:  occurred,
		TextFields: []string{service, "division", "force_type", "citizen_injured"},
		DateFields: []string{occurred},
	}, nil
}

// Options are the fetch arguments for a response-to-resistance year.
type Options struct {
	datasets.Common

	// Year selects the dataset release, 2017 through 2020.
	Year int

	// ServiceTypes filters on the service type column, whichever name the
	// selected year uses.
	ServiceTypes []string

	// Divisions filters on the patrol division column.
	Divisions []string
}

// Fetch retrieves response-to-resistance records matching opts.
func Fetch(ctx context.Context, c *soda.Client, opts Options) (soda.Table, error) {
	ds, err := Descriptor(opts.Year)
	if err != nil {
		return nil, err
	}
	_, serviceField := fieldNames(opts.Year)

	var b soda.WhereBuilder
	var structured []string
	if len(opts.ServiceTypes) > 0 {
		b.In(serviceField, soda.Strings(opts.ServiceTypes)...)
		structured = append(structured, "service types")
	}
	if len(opts.Divisions) > 0 {
		b.In("division", soda.Strings(opts.Divisions)...)
		structured = append(structured, "divisions")
	}

	q, limit, err := opts.Build(ds, &b, structured, c.Logf)
	if err != nil {
		return nil, err
	}
	return c.Fetch(ctx, ds.ID, q, limit)
}
