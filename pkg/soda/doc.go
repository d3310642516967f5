// Package soda is the low-level client for Socrata-style open data
// endpoints as exposed by the Dallas Open Data portal.
//
// # Overview
//
// The package covers three concerns shared by every dataset:
//
//   - Query building: typed filter arguments (calendar-date ranges,
//     membership tests) rendered as a single $where expression
//   - Paginated fetching: bounded page requests accumulated into one
//     [Table], with the portal's 1000-row page ceiling handled
//     transparently
//   - Value discovery: single-shot distinct-value queries used to find
//     valid filter inputs
//
// Dataset-specific knowledge (endpoint identifiers, field names, filter
// vocabularies) lives in the adapter subpackages under
// [github.com/civicdata/dallaspd/pkg/datasets].
//
// # Client Pattern
//
// All dataset adapters share one [Client]:
//
//	client := soda.NewClient(soda.WithAppToken(token))
//	rows, err := incidents.Fetch(ctx, client, incidents.Options{
//	    StartDate: "2023-01-01",
//	    EndDate:   "2023-12-31",
//	})
//
// The client handles:
//   - Identifying headers (User-Agent, X-Request-Id, optional X-App-Token)
//   - Structured errors (REQUEST_FAILED, DECODE_FAILED, UNKNOWN_FIELD)
//   - Informational progress messages through an optional logger callback
//
// There is no caching and no retry: every failure is surfaced to the
// caller exactly once.
package soda
