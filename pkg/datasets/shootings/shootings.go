// Package shootings fetches the Dallas officer-involved shootings
// dataset.
package shootings

import (
	"context"

	"github.com/civicdata/dallaspd/pkg/datasets"
	"github.com/civicdata/dallaspd/pkg/soda"
)

// Descriptor identifies the officer-involved shootings endpoint.
var Descriptor = datasets.Dataset{
	Name:      "shootings",
	ID:        "4gmt-jyx2",
	DateField: "date",
	TextFields: []string{
		"grand_jury_disposition", "suspect_weapon",
		"suspect_deceased_injured_or_shoot_and_miss",
	},
	DateFields: []string{"date"},
}

// Options are the fetch arguments for the shootings dataset.
type Options struct {
	datasets.Common

	// GrandJuryDispositions filters on the grand jury disposition column.
	GrandJuryDispositions []string

	// SuspectWeapons filters on the suspect weapon column.
	SuspectWeapons []string
}

// Fetch retrieves officer-involved shootings matching opts.
func Fetch(ctx context.Context, c *soda.Client, opts Options) (soda.Table, error) {
	var b soda.WhereBuilder
	var structured []string
	if len(opts.GrandJuryDispositions) > 0 {
		b.In("grand_jury_disposition", soda.Strings(opts.GrandJuryDispositions)...)
		structured = append(structured, "grand jury dispositions")
	}
	if len(opts.SuspectWeapons) > 0 {
		b.In("suspect_weapon", soda.Strings(opts.SuspectWeapons)...)
		structured = append(structured, "suspect weapons")
	}

	q, limit, err := opts.Build(Descriptor, &b, structured, c.Logf)
	if err != nil {
		return nil, err
	}
	return c.Fetch(ctx, Descriptor.ID, q, limit)
}
