package wifi

// Apply filters networks by q and then orders what is left. The input
// slice and its records are left untouched; the result is always a new,
// non-nil slice.
func Apply(q Query, networks []Network) []Network {
	result := make([]Network, 0, len(networks))
	for _, n := range networks {
		if q.Match(n) {
			result = append(result, n)
		}
	}
	if q.SortField != "" {
		SortNetworks(result, q.SortField, q.Direction)
	}
	return result
}

// Match reports whether n passes the query's filter. Records missing the
// criteria field, or holding a non-numeric value for a numeric bound,
// never match.
func (q Query) Match(n Network) bool {
	if !q.HasFilter() {
		return true
	}
	switch q.Mode {
	case FilterEquals:
		s, ok := n.String(q.Field)
		return ok && s == q.Value
	case FilterAbove:
		f, ok := n.Number(q.Field)
		return ok && f > q.Lower
	case FilterBelow:
		f, ok := n.Number(q.Field)
		return ok && f < q.Upper
	case FilterRange:
		f, ok := n.Number(q.Field)
		return ok && f > q.Lower && f < q.Upper
	}
	return false
}
