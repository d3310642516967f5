// Package arrests fetches the Dallas police arrests dataset.
package arrests

import (
	"context"

	"github.com/civicdata/dallaspd/pkg/datasets"
	"github.com/civicdata/dallaspd/pkg/soda"
)

// Descriptor identifies the arrests endpoint. Column names carry the
// dataset's "ar" prefix (arbeat, arpremises), unlike incidents.
var Descriptor = datasets.Dataset{
	Name:      "arrests",
	ID:        "sdr7-6v3j",
	DateField: "arrestdate",
	TextFields: []string{
		"arpremises", "arweapon", "drugrelated", "arladdress", "arstate",
	},
	DateFields: []string{"arrestdate", "arbkdate"},
}

// Options are the fetch arguments for the arrests dataset.
type Options struct {
	datasets.Common

	// Beats filters on the arresting beat column.
	Beats []string

	// Premises filters on the arrest premises column.
	Premises []string
}

// Fetch retrieves arrests matching opts.
func Fetch(ctx context.Context, c *soda.Client, opts Options) (soda.Table, error) {
	var b soda.WhereBuilder
	var structured []string
	if len(opts.Beats) > 0 {
		b.In("arbeat", soda.Strings(opts.Beats)...)
		structured = append(structured, "beats")
	}
	if len(opts.Premises) > 0 {
		b.In("arpremises", soda.Strings(opts.Premises)...)
		structured = append(structured, "premises")
	}

	q, limit, err := opts.Build(Descriptor, &b, structured, c.Logf)
	if err != nil {
		return nil, err
	}
	return c.Fetch(ctx, Descriptor.ID, q, limit)
}
