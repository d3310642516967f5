// Package charges fetches the Dallas police arrest charges dataset.
package charges

import (
	"context"

	"github.com/civicdata/dallaspd/pkg/datasets"
	"github.com/civicdata/dallaspd/pkg/soda"
)

// Descriptor identifies the arrest charges endpoint.
var Descriptor = datasets.Dataset{
	Name:      "charges",
	ID:        "9u3q-af6p",
	DateField: "arrestdate",
	TextFields: []string{
		"severity", "chargedesc", "penalcode", "chargecat",
	},
	DateFields: []string{"arrestdate"},
}

// Options are the fetch arguments for the charges dataset.
type Options struct {
	datasets.Common

	// Severities filters on the charge severity column
	// (e.g., "F" felony, "M" misdemeanor classes).
	Severities []string

	// PenalCodes filters on the penal code column.
	PenalCodes []string
}

// Fetch retrieves charges matching opts.
func Fetch(ctx context.Context, c *soda.Client, opts Options) (soda.Table, error) {
	var b soda.WhereBuilder
	var structured []string
	if len(opts.Severities) > 0 {
		b.In("severity", soda.Strings(opts.Severities)...)
		structured = append(structured, "severities")
	}
	if len(opts.PenalCodes) > 0 {
		b.In("penalcode", soda.Strings(opts.PenalCodes)...)
		structured = append(structured, "penal codes")
	}

	q, limit, err := opts.Build(Descriptor, &b, structured, c.Logf)
	if err != nil {
		return nil, err
	}
	return c.Fetch(ctx, Descriptor.ID, q, limit)
}
