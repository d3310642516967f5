package soda

import (
	"context"

	"github.com/civicdata/dallaspd/pkg/observability"
)

const (
	// MaxPageSize is the portal's per-request row ceiling. Requests never
	// ask for more rows than this, regardless of the caller's limit.
	MaxPageSize = 1000

	// DefaultLimit is the row limit applied by dataset adapters when the
	// caller does not specify one.
	DefaultLimit = 1000

	// Unlimited requests every matching row.
	Unlimited = -1
)

// Row is one record as returned by the portal: column name to value.
// Values are strings, numbers, booleans, or nested objects depending on
// the column type; the column set is determined by the response
// (schema-on-read).
type Row map[string]any

// Table is an ordered sequence of rows. Accumulated pages preserve
// arrival order.
type Table []Row

// Columns returns the sorted union of column names across all rows.
func (t Table) Columns() []string {
	seen := map[string]bool{}
	var cols []string
	for _, row := range t {
		for k := range row {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	sortStrings(cols)
	return cols
}

// Fetch retrieves up to limit rows from dataset, issuing as many bounded
// page requests as needed. A limit of [Unlimited] retrieves every
// matching row; a limit of zero returns an empty table without issuing
// any request. Pages are requested serially; there is no retry.
//
// Termination conditions (limit reached, short page, empty page, no
// matching records) are reported through the client's logger and the
// registered [observability.FetchHooks]; they are observational only.
func (c *Client) Fetch(ctx context.Context, dataset string, q Query, limit int) (Table, error) {
	if limit == 0 {
		c.logf("no rows requested; skipping fetch")
		observability.Fetch().OnDone(ctx, dataset, 0, observability.ReasonZeroLimit)
		return Table{}, nil
	}

	var out Table
	offset := 0
	for {
		pageSize := MaxPageSize
		if limit > 0 {
			if remaining := limit - len(out); remaining < pageSize {
				pageSize = remaining
			}
		}

		rows, err := c.getRows(ctx, dataset, q.values(pageSize, offset))
		if err != nil {
			return nil, err
		}

		if len(rows) == 0 {
			if offset == 0 {
				c.logf("no matching records")
				observability.Fetch().OnDone(ctx, dataset, 0, observability.ReasonNoData)
			} else {
				c.logf("retrieved all %d matching records", len(out))
				observability.Fetch().OnDone(ctx, dataset, len(out), observability.ReasonEmptyPage)
			}
			break
		}

		observability.Fetch().OnPage(ctx, dataset, offset, len(rows))
		out = append(out, rows...)
		offset += len(rows)

		if limit > 0 && len(out) >= limit {
			c.logf("reached limit of %d", limit)
			observability.Fetch().OnDone(ctx, dataset, len(out), observability.ReasonLimitReached)
			break
		}
		if len(rows) < pageSize {
			c.logf("retrieved all %d matching records", len(out))
			observability.Fetch().OnDone(ctx, dataset, len(out), observability.ReasonShortPage)
			break
		}
	}

	// A page can overshoot the limit if the server ignores $limit.
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
