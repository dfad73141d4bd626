// Package config holds the command line configuration and turns it into
// a wifi.Query.
package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/peterbourgon/ff/v3"
	"github.com/shazow/wifiseek/wifi"
)

// EnvPrefix is prepended to flag names to form environment variables,
// e.g. WIFISEEK_INTERFACE.
const EnvPrefix = "WIFISEEK"

// DefaultTimeout is the delay between retries.
const DefaultTimeout = 1000 * time.Millisecond

// Config is the full set of user settings for a run.
type Config struct {
	Interface   string
	Backend     string
	Print       bool
	Output      string
	Criteria    string
	Filter      string
	Above       OptionalFloat
	Below       OptionalFloat
	Sort        string
	Ascending   bool
	Descending  bool
	Retry       bool
	Timeout     Millis
	MaxAttempts int
	QR          bool
	Theme       string
	LogFile     string
	Verbose     bool
	Version     bool
	ConfigFile  string
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Interface: DefaultInterface,
		Backend:   "auto",
		Ascending: true,
		Timeout:   Millis(DefaultTimeout),
	}
}

// aliases maps short flag names to the flags they stand for.
var aliases = map[string]string{
	"i": "interface",
	"p": "print",
	"o": "output",
	"c": "criteria",
	"f": "filter",
	"s": "sort",
	"a": "ascending",
	"d": "descending",
	"r": "retry",
	"t": "timeout",
	"v": "verbose",
}

// RegisterFlags binds c to fs. Short aliases are not registered as flags,
// run arguments through ExpandAliases before parsing.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Interface, "interface", c.Interface, "wireless interface to scan (-i)")
	fs.StringVar(&c.Backend, "backend", c.Backend, "scanner backend: auto, iwlist, networkmanager, iwd, darwin, mock")
	fs.BoolVar(&c.Print, "print", c.Print, "print matching networks to stdout (-p)")
	fs.StringVar(&c.Output, "output", c.Output, "write matching networks to this JSON file (-o)")
	fs.StringVar(&c.Criteria, "criteria", c.Criteria, "network field to filter on (-c)")
	fs.StringVar(&c.Filter, "filter", c.Filter, "keep networks whose criteria field equals this value (-f)")
	fs.Var(&c.Above, "above", "keep networks whose criteria field is greater than this number")
	fs.Var(&c.Below, "below", "keep networks whose criteria field is less than this number")
	fs.StringVar(&c.Sort, "sort", c.Sort, "network field to sort by (-s)")
	fs.BoolVar(&c.Ascending, "ascending", c.Ascending, "sort in ascending order (-a)")
	fs.BoolVar(&c.Descending, "descending", c.Descending, "sort in descending order, overrides -ascending (-d)")
	fs.BoolVar(&c.Retry, "retry", c.Retry, "scan again until a network matches (-r)")
	fs.Var(&c.Timeout, "timeout", "delay between retries, in milliseconds or as a duration like 2s (-t)")
	fs.IntVar(&c.MaxAttempts, "max-attempts", c.MaxAttempts, "give up after this many scans when retrying, 0 for no limit")
	fs.BoolVar(&c.QR, "qr", c.QR, "print a QR code to join the first matching network")
	fs.StringVar(&c.Theme, "theme", c.Theme, "path to theme toml file")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "write a rotating debug log to this file")
	fs.BoolVar(&c.Verbose, "verbose", c.Verbose, "enable debug logging (-v)")
	fs.BoolVar(&c.Version, "version", c.Version, "display version")
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "path to a toml config file")
}

// Options are the ff parse options shared by every command.
func Options() []ff.Option {
	return []ff.Option{
		ff.WithEnvVarPrefix(EnvPrefix),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ParseTOML),
	}
}

// ExpandAliases rewrites short flags like -i into their long form. Parsing
// stops at "--".
func ExpandAliases(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}
		out = append(out, expandAlias(arg))
	}
	return out
}

func expandAlias(arg string) string {
	if !strings.HasPrefix(arg, "-") {
		return arg
	}
	dashes := "-"
	name := arg[1:]
	if strings.HasPrefix(name, "-") {
		dashes = "--"
		name = name[1:]
	}
	name, value, hasValue := strings.Cut(name, "=")
	long, ok := aliases[name]
	if !ok {
		return arg
	}
	if hasValue {
		return dashes + long + "=" + value
	}
	return dashes + long
}

// Query validates the filter and sort settings.
func (c *Config) Query() (wifi.Query, error) {
	return wifi.NewQuery(wifi.QueryOptions{
		Criteria:   c.Criteria,
		Value:      c.Filter,
		Above:      c.Above.Ptr(),
		Below:      c.Below.Ptr(),
		SortField:  c.Sort,
		Descending: c.Descending,
	})
}

// Validate checks the settings that are not part of the query.
func (c *Config) Validate() error {
	if c.Interface == "" {
		return fmt.Errorf("interface must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.MaxAttempts < 0 {
		return fmt.Errorf("max-attempts must not be negative, got %d", c.MaxAttempts)
	}
	return nil
}

// Millis is a duration flag that reads bare integers as milliseconds.
type Millis time.Duration

// Duration returns m as a time.Duration.
func (m Millis) Duration() time.Duration {
	return time.Duration(m)
}

func (m Millis) String() string {
	return time.Duration(m).String()
}

// Set implements flag.Value.
func (m *Millis) Set(s string) error {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*m = Millis(time.Duration(n) * time.Millisecond)
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q", s)
	}
	*m = Millis(d)
	return nil
}

// OptionalFloat is a float flag that remembers whether it was set.
type OptionalFloat struct {
	Value float64
	IsSet bool
}

func (f *OptionalFloat) String() string {
	if f == nil || !f.IsSet {
		return ""
	}
	return strconv.FormatFloat(f.Value, 'f', -1, 64)
}

// Set implements flag.Value.
func (f *OptionalFloat) Set(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", s)
	}
	f.Value, f.IsSet = v, true
	return nil
}

// Ptr returns nil when f is unset.
func (f OptionalFloat) Ptr() *float64 {
	if !f.IsSet {
		return nil
	}
	v := f.Value
	return &v
}
