package soda

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"github.com/civicdata/dallaspd/pkg/errors"
)

// DefaultDistinctLimit caps the number of values a discovery query
// requests when the caller does not specify a maximum.
const DefaultDistinctLimit = 5000

// Distinct retrieves the sorted unique values of one field in a single
// bounded request; there is no pagination loop. Null and empty values
// are stripped, and the result is re-sorted client-side because the
// portal sorts numeric-as-string fields lexically.
//
// A result exactly at the cap triggers a warning through the client's
// logger: the portal truncates silently, so values may be missing.
// Querying a field the dataset does not have returns an UNKNOWN_FIELD
// error naming the field and dataset. A field with no non-null values
// yields an empty slice and no error.
func (c *Client) Distinct(ctx context.Context, dataset, field string, max int) ([]string, error) {
	if max <= 0 {
		max = DefaultDistinctLimit
	}

	params := url.Values{}
	params.Set("$select", "distinct "+field)
	params.Set("$order", field)
	params.Set("$limit", strconv.Itoa(max))

	rows, err := c.getRows(ctx, dataset, params)
	if err != nil {
		if errors.Is(err, errors.ErrCodeUnknownField) {
			return nil, errors.Wrap(errors.ErrCodeUnknownField, err, "dataset %s has no field %q", dataset, field)
		}
		return nil, err
	}

	values := make([]string, 0, len(rows))
	for _, row := range rows {
		if s, ok := distinctValue(row, field); ok && s != "" {
			values = append(values, s)
		}
	}

	if len(rows) == max {
		c.logf("distinct query returned exactly %d values; results may be incomplete", max)
	}

	sortValues(values)
	return values, nil
}

// distinctValue pulls the selected column out of a result row. The
// portal sometimes renames the selected column with a _1 suffix, so the
// lookup falls back to that name and then, for single-column rows, to
// whatever column is present.
func distinctValue(row Row, field string) (string, bool) {
	if v, ok := row[field]; ok {
		return renderValue(v)
	}
	if v, ok := row[field+"_1"]; ok {
		return renderValue(v)
	}
	if len(row) == 1 {
		for _, v := range row {
			return renderValue(v)
		}
	}
	return "", false
}

func renderValue(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return fmt.Sprintf("%v", t), true
	}
}

// sortValues sorts numerically when every value parses as a number,
// lexically otherwise.
func sortValues(values []string) {
	numeric := len(values) > 0
	for _, v := range values {
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			numeric = false
			break
		}
	}
	if numeric {
		sort.Slice(values, func(i, j int) bool {
			fi, _ := strconv.ParseFloat(values[i], 64)
			fj, _ := strconv.ParseFloat(values[j], 64)
			return fi < fj
		})
		return
	}
	sort.Strings(values)
}

// sortStrings sorts in place; split out so Table.Columns does not pull
// in the numeric-aware path.
func sortStrings(s []string) { sort.Strings(s) }
