package wifi

import (
	"fmt"
	"strconv"
)

// FilterMode selects how Query.Field is matched.
type FilterMode int

const (
	FilterNone FilterMode = iota
	FilterEquals
	FilterAbove
	FilterBelow
	FilterRange
)

func (m FilterMode) String() string {
	switch m {
	case FilterNone:
		return "none"
	case FilterEquals:
		return "equals"
	case FilterAbove:
		return "above"
	case FilterBelow:
		return "below"
	case FilterRange:
		return "range"
	}
	return fmt.Sprintf("FilterMode(%d)", int(m))
}

// SortDirection is the order applied after filtering.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

func (d SortDirection) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}

// Query describes which networks to keep and how to order them. A Query is
// a value; build it once with NewQuery and pass it around by copy.
type Query struct {
	Field string
	Mode  FilterMode
	Value string
	Lower float64
	Upper float64

	SortField string
	Direction SortDirection
}

// QueryOptions holds the raw, unvalidated query settings as they come from
// configuration. Nil bounds are unset.
type QueryOptions struct {
	Criteria   string
	Value      string
	Above      *float64
	Below      *float64
	SortField  string
	Descending bool
}

// NewQuery normalizes opts into a Query. The filter mode is derived from
// which of Value, Above and Below are set.
func NewQuery(opts QueryOptions) (Query, error) {
	q := Query{
		Field:     opts.Criteria,
		SortField: opts.SortField,
	}
	if opts.Descending {
		q.Direction = Descending
	}
	if q.Field == "" {
		return q, nil
	}

	hasBound := opts.Above != nil || opts.Below != nil
	switch {
	case opts.Value != "" && hasBound:
		return Query{}, fmt.Errorf("filter value %q cannot be combined with above/below bounds: %w", opts.Value, ErrInvalidQuery)
	case opts.Value != "":
		q.Mode = FilterEquals
		q.Value = opts.Value
	case opts.Above != nil && opts.Below != nil:
		if *opts.Above >= *opts.Below {
			return Query{}, fmt.Errorf("empty range: %s must be above %s and below %s: %w",
				q.Field, formatBound(*opts.Above), formatBound(*opts.Below), ErrInvalidQuery)
		}
		q.Mode = FilterRange
		q.Lower = *opts.Above
		q.Upper = *opts.Below
	case opts.Above != nil:
		q.Mode = FilterAbove
		q.Lower = *opts.Above
	case opts.Below != nil:
		q.Mode = FilterBelow
		q.Upper = *opts.Below
	}
	return q, nil
}

// HasFilter reports whether the query filters anything out.
func (q Query) HasFilter() bool {
	return q.Field != "" && q.Mode != FilterNone
}

// String describes the active filter, e.g. "security = wpa2".
func (q Query) String() string {
	if !q.HasFilter() {
		return "no filter"
	}
	switch q.Mode {
	case FilterEquals:
		return fmt.Sprintf("%s = %s", q.Field, q.Value)
	case FilterAbove:
		return fmt.Sprintf("%s > %s", q.Field, formatBound(q.Lower))
	case FilterBelow:
		return fmt.Sprintf("%s < %s", q.Field, formatBound(q.Upper))
	case FilterRange:
		return fmt.Sprintf("%s > %s and %s < %s", q.Field, formatBound(q.Lower), q.Field, formatBound(q.Upper))
	}
	return q.Mode.String()
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
