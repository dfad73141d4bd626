package wifi

import (
	"slices"
	"sort"
)

// Compare orders two records by field. Numbers compare numerically when
// both sides coerce, everything else compares as text. A missing value
// sorts before any present value.
func Compare(a, b Network, field string) int {
	as, aok := a.String(field)
	bs, bok := b.String(field)
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	}

	if af, ok := a.Number(field); ok {
		if bf, ok := b.Number(field); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			}
			return 0
		}
	}

	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	}
	return 0
}

// SortNetworks sorts networks in place by field. Descending order is the
// reverse of the stable ascending order, so ties come out in reverse input
// order.
func SortNetworks(networks []Network, field string, direction SortDirection) {
	sort.SliceStable(networks, func(i, j int) bool {
		return Compare(networks[i], networks[j], field) < 0
	})
	if direction == Descending {
		slices.Reverse(networks)
	}
}
