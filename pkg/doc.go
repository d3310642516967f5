// Package pkg provides the libraries behind the dallaspd client.
//
// # Overview
//
// dallaspd retrieves the Dallas Open Data public-safety tables through a
// small set of layered packages:
//
//  1. [soda] - Portal client: query building, paginated fetching,
//     distinct-value discovery
//  2. [datasets] - Per-dataset adapters (incidents, arrests, charges,
//     shootings, useofforce) mapping typed filters onto the client
//  3. [clean] - Post-fetch cleaning: text normalization, date parsing,
//     categorical standardization
//  4. [geo] - State-plane to WGS84 coordinate conversion for the
//     incidents dataset
//  5. [export] - JSON and CSV output
//
// # Architecture
//
// The typical data flow:
//
//	typed filter options
//	         ↓
//	    [datasets] adapter (endpoint identity + field mapping)
//	         ↓
//	    [soda] client (query string, pagination, errors)
//	         ↓
//	    [clean] / [geo] (optional post-processing)
//	         ↓
//	    [export] JSON/CSV output
//
// # Quick Start
//
// Fetch a month of incidents for two divisions:
//
//	import (
//	    "context"
//	    "github.com/civicdata/dallaspd/pkg/datasets"
//	    "github.com/civicdata/dallaspd/pkg/datasets/incidents"
//	    "github.com/civicdata/dallaspd/pkg/soda"
//	)
//
//	client := soda.NewClient()
//	tbl, err := incidents.Fetch(context.Background(), client, incidents.Options{
//	    Common: datasets.Common{
//	        StartDate: "2023-03-01",
//	        EndDate:   "2023-03-31",
//	        Limit:     soda.Unlimited,
//	    },
//	    Divisions: []string{"CENTRAL", "NORTHEAST"},
//	})
//
// Discover valid filter inputs first:
//
//	values, err := client.Distinct(ctx, incidents.Descriptor.ID, "division", 0)
//
// Clean and standardize afterwards:
//
//	clean.Clean(tbl, clean.Options{
//	    TextFields: incidents.Descriptor.TextFields,
//	    DateFields: incidents.Descriptor.DateFields,
//	})
//	clean.StandardizeDivision(tbl, "division", clean.Options{})
//
// # Supporting Packages
//
// [errors] - Structured error codes (INVALID_ARGUMENT, REQUEST_FAILED,
// DECODE_FAILED, UNKNOWN_FIELD) shared by every layer.
//
// [observability] - Pluggable hooks for fetch pagination and HTTP
// request lifecycles; no-op by default.
//
// [buildinfo] - Build-time version information injected via ldflags.
//
// [soda]: https://pkg.go.dev/github.com/civicdata/dallaspd/pkg/soda
// [datasets]: https://pkg.go.dev/github.com/civicdata/dallaspd/pkg/datasets
// [clean]: https://pkg.go.dev/github.com/civicdata/dallaspd/pkg/clean
// [geo]: https://pkg.go.dev/github.com/civicdata/dallaspd/pkg/geo
// [export]: https://pkg.go.dev/github.com/civicdata/dallaspd/pkg/export
// [errors]: https://pkg.go.dev/github.com/civicdata/dallaspd/pkg/errors
// [observability]: https://pkg.go.dev/github.com/civicdata/dallaspd/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/civicdata/dallaspd/pkg/buildinfo
package pkg
