package soda

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/civicdata/dallaspd/pkg/errors"
)

const (
	// dayFormat is the accepted input format for calendar-date arguments.
	dayFormat = "2006-01-02"

	// floatingTimestamp is the portal's floating timestamp literal format.
	// All date comparisons use this form, including datasets whose date
	// column is free text.
	floatingTimestamp = "2006-01-02T15:04:05"
)

// Query describes one dataset request: an optional filter expression,
// column selection, ordering, and verbatim pass-through parameters.
// The zero value requests every column of every row.
type Query struct {
	Where  string     // $where filter expression (raw SoQL)
	Select []string   // $select column restriction
	Order  string     // $order clause
	Params url.Values // additional parameters passed through verbatim
}

// values renders the query as URL parameters for one page request.
func (q Query) values(limit, offset int) url.Values {
	v := url.Values{}
	for key, vals := range q.Params {
		v[key] = append([]string(nil), vals...)
	}
	v.Set("$limit", strconv.Itoa(limit))
	v.Set("$offset", strconv.Itoa(offset))
	if q.Where != "" {
		v.Set("$where", q.Where)
	}
	if len(q.Select) > 0 {
		v.Set("$select", strings.Join(q.Select, ", "))
	}
	if q.Order != "" {
		v.Set("$order", q.Order)
	}
	return v
}

// Literal is a typed scalar for filter clauses. Strings are single-quoted
// with embedded quotes doubled; numbers and booleans render unquoted.
// Construct with [String], [Int], [Float], or [Bool].
type Literal struct {
	expr string
}

// String quotes s as a SoQL string literal.
func String(s string) Literal {
	return Literal{"'" + strings.ReplaceAll(s, "'", "''") + "'"}
}

// Int renders i as an unquoted numeric literal.
func Int(i int) Literal {
	return Literal{strconv.Itoa(i)}
}

// Float renders f as an unquoted numeric literal.
func Float(f float64) Literal {
	return Literal{strconv.FormatFloat(f, 'g', -1, 64)}
}

// Bool renders b as an unquoted boolean literal.
func Bool(b bool) Literal {
	return Literal{strconv.FormatBool(b)}
}

// String returns the rendered literal.
func (l Literal) String() string { return l.expr }

// WhereBuilder accumulates filter clauses and joins them with AND.
// The zero value is ready to use.
type WhereBuilder struct {
	clauses []string
}

// DateRange appends inclusive calendar-day bounds on field. Either bound
// may be empty. The start bound compares >= the start of day; the end
// bound compares < the start of the following day, so both ends of the
// range are day-inclusive. Dates must be in YYYY-MM-DD form.
func (b *WhereBuilder) DateRange(field, start, end string) error {
	if start != "" {
		day, err := parseDay(start)
		if err != nil {
			return err
		}
		b.clauses = append(b.clauses, fmt.Sprintf("%s >= '%s'", field, day.Format(floatingTimestamp)))
	}
	if end != "" {
		day, err := parseDay(end)
		if err != nil {
			return err
		}
		next := day.AddDate(0, 0, 1)
		b.clauses = append(b.clauses, fmt.Sprintf("%s < '%s'", field, next.Format(floatingTimestamp)))
	}
	return nil
}

func parseDay(s string) (time.Time, error) {
	day, err := time.Parse(dayFormat, s)
	if err != nil {
		return time.Time{}, errors.New(errors.ErrCodeInvalidArgument, "invalid date %q (expected YYYY-MM-DD)", s)
	}
	return day, nil
}

// In appends a membership clause testing field against values.
// An empty value list appends nothing.
func (b *WhereBuilder) In(field string, values ...Literal) {
	if len(values) == 0 {
		return
	}
	rendered := make([]string, len(values))
	for i, v := range values {
		rendered[i] = v.String()
	}
	b.clauses = append(b.clauses, fmt.Sprintf("%s in (%s)", field, strings.Join(rendered, ", ")))
}

// Empty reports whether no clauses have been added.
func (b *WhereBuilder) Empty() bool { return len(b.clauses) == 0 }

// String joins the accumulated clauses with AND. An empty builder renders
// the empty string, which requests an unfiltered fetch.
func (b *WhereBuilder) String() string {
	return strings.Join(b.clauses, " AND ")
}

// Strings converts plain string values to literals for [WhereBuilder.In].
func Strings(values []string) []Literal {
	out := make([]Literal, len(values))
	for i, v := range values {
		out[i] = String(v)
	}
	return out
}

// Ints converts integer values to literals for [WhereBuilder.In].
func Ints(values []int) []Literal {
	out := make([]Literal, len(values))
	for i, v := range values {
		out[i] = Int(v)
	}
	return out
}
