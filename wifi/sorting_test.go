package wifi

import (
	"reflect"
	"slices"
	"testing"
)

func ssids(networks []Network) []string {
	var out []string
	for _, n := range networks {
		s, _ := n.String(FieldSSID)
		out = append(out, s)
	}
	return out
}

func TestSortNetworks(t *testing.T) {
	tests := []struct {
		name      string
		networks  []Network
		field     string
		direction SortDirection
		expected  []string
	}{
		{
			name: "Numeric descending",
			networks: []Network{
				{"ssid": "A", "signal": 10},
				{"ssid": "B", "signal": 30},
				{"ssid": "C", "signal": 20},
			},
			field:     "signal",
			direction: Descending,
			expected:  []string{"B", "C", "A"},
		},
		{
			name: "Numeric not lexicographic",
			networks: []Network{
				{"ssid": "nine", "channel": 9},
				{"ssid": "eleven", "channel": "11"},
				{"ssid": "one", "channel": 1.0},
			},
			field:    "channel",
			expected: []string{"one", "nine", "eleven"},
		},
		{
			name: "Negative dBm",
			networks: []Network{
				{"ssid": "far", "signal": -80},
				{"ssid": "near", "signal": -30},
				{"ssid": "mid", "signal": -55},
			},
			field:     "signal",
			direction: Descending,
			expected:  []string{"near", "mid", "far"},
		},
		{
			name: "Text",
			networks: []Network{
				{"ssid": "b", "security": "wpa2"},
				{"ssid": "a", "security": "open"},
				{"ssid": "c", "security": "wep"},
			},
			field:    "security",
			expected: []string{"a", "c", "b"},
		},
		{
			name: "Missing sorts first",
			networks: []Network{
				{"ssid": "has", "signal": -50},
				{"ssid": "none"},
			},
			field:    "signal",
			expected: []string{"none", "has"},
		},
		{
			name: "Ascending ties keep input order",
			networks: []Network{
				{"ssid": "x1", "channel": 6},
				{"ssid": "y", "channel": 1},
				{"ssid": "x2", "channel": 6},
			},
			field:    "channel",
			expected: []string{"y", "x1", "x2"},
		},
		{
			name: "Descending ties are reversed",
			networks: []Network{
				{"ssid": "x1", "channel": 6},
				{"ssid": "y", "channel": 1},
				{"ssid": "x2", "channel": 6},
			},
			field:     "channel",
			direction: Descending,
			expected:  []string{"x2", "x1", "y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SortNetworks(tt.networks, tt.field, tt.direction)
			if got := ssids(tt.networks); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("SortNetworks() got = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSortIdempotent(t *testing.T) {
	networks := []Network{
		{"ssid": "a", "signal": -40},
		{"ssid": "b", "signal": -70},
		{"ssid": "c", "signal": -40},
		{"ssid": "d"},
		{"ssid": "e", "signal": "-55"},
	}
	once := slices.Clone(networks)
	SortNetworks(once, "signal", Ascending)
	twice := slices.Clone(once)
	SortNetworks(twice, "signal", Ascending)
	if !reflect.DeepEqual(ssids(once), ssids(twice)) {
		t.Errorf("sorting twice changed order: %v then %v", ssids(once), ssids(twice))
	}

	// Reversal flips ties on every pass, so descending is only idempotent
	// without them.
	distinct := []Network{
		{"ssid": "a", "signal": -40},
		{"ssid": "b", "signal": -70},
		{"ssid": "d"},
		{"ssid": "e", "signal": "-55"},
	}
	once = slices.Clone(distinct)
	SortNetworks(once, "signal", Descending)
	twice = slices.Clone(once)
	SortNetworks(twice, "signal", Descending)
	if !reflect.DeepEqual(ssids(once), ssids(twice)) {
		t.Errorf("descending twice changed order: %v then %v", ssids(once), ssids(twice))
	}
}

func TestSortReverseLaw(t *testing.T) {
	networks := []Network{
		{"ssid": "a", "channel": 6},
		{"ssid": "b", "channel": 1},
		{"ssid": "c", "channel": 6},
		{"ssid": "d", "channel": 11},
		{"ssid": "e", "channel": 1},
	}

	asc := slices.Clone(networks)
	SortNetworks(asc, "channel", Ascending)

	desc := slices.Clone(networks)
	SortNetworks(desc, "channel", Descending)
	slices.Reverse(desc)

	if !reflect.DeepEqual(ssids(asc), ssids(desc)) {
		t.Errorf("reversed descending = %v, want ascending %v", ssids(desc), ssids(asc))
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b Network
		want int
	}{
		{Network{"f": 1}, Network{"f": 2}, -1},
		{Network{"f": "10"}, Network{"f": 9}, 1},
		{Network{"f": "abc"}, Network{"f": "abd"}, -1},
		{Network{"f": "x"}, Network{"f": "x"}, 0},
		{Network{}, Network{"f": ""}, -1},
		{Network{}, Network{}, 0},
		{Network{"f": 5}, Network{"f": nil}, 1},
	}
	for _, tt := range tests {
		if got := Compare(tt.a, tt.b, "f"); got != tt.want {
			t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
