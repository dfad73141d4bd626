package mock

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/shazow/wifiseek/wifi"
)

var DefaultActionSleep = 500 * time.Millisecond

// Scanner is a scripted wifi.Scanner for tests and demos.
//
// Each call to Scan consumes the next entry of Results and Errors. Once the
// script runs out the last entry is repeated. With an empty script, a list
// of fun networks with randomized signal levels is returned.
type Scanner struct {
	Results [][]wifi.Network
	Errors  []error

	// ActionSleep is a delay before every scan, to better emulate a
	// real-world backend. Set to 0 during testing.
	ActionSleep time.Duration

	mu         sync.Mutex
	calls      int
	interfaces []string
	rand       *rand.Rand
}

// New creates a Scanner that reports the fun networks.
func New() *Scanner {
	return &Scanner{
		ActionSleep: DefaultActionSleep,
		rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewScripted creates a Scanner that returns results in order, one entry
// per call, without delay.
func NewScripted(results ...[]wifi.Network) *Scanner {
	return &Scanner{Results: results}
}

// FailWith creates a Scanner whose every call fails with err.
func FailWith(err error) *Scanner {
	return &Scanner{Errors: []error{err}}
}

// Scan implements wifi.Scanner.
func (s *Scanner) Scan(ctx context.Context, iface string) ([]wifi.Network, error) {
	if s.ActionSleep > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.ActionSleep):
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.calls
	s.calls++
	s.interfaces = append(s.interfaces, iface)

	if len(s.Errors) > 0 {
		if err := s.Errors[min(i, len(s.Errors)-1)]; err != nil {
			return nil, &wifi.ScanError{Backend: "mock", Interface: iface, Err: err}
		}
	}
	if len(s.Results) > 0 {
		return cloneAll(s.Results[min(i, len(s.Results)-1)]), nil
	}
	if len(s.Errors) > 0 {
		return []wifi.Network{}, nil
	}
	return s.funNetworks(), nil
}

// Calls returns the number of Scan calls so far.
func (s *Scanner) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Interfaces returns the interface names Scan was called with.
func (s *Scanner) Interfaces() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.interfaces...)
}

func cloneAll(networks []wifi.Network) []wifi.Network {
	out := make([]wifi.Network, len(networks))
	for i, n := range networks {
		out[i] = n.Clone()
	}
	return out
}

type funNetwork struct {
	ssid     string
	security string
	channel  int
}

var funNetworks = []funNetwork{
	{"HideYoKidsHideYoWiFi", wifi.SecurityWPA2, 1},
	{"GET off my LAN", wifi.SecurityWPA2, 6},
	{"NeverGonnaGiveYouIP", wifi.SecurityWEP, 11},
	{"Unencrypted_Honeypot", wifi.SecurityOpen, 6},
	{"YourWiFi.exe", wifi.SecurityWPA, 1},
	{"I See Dead Packets", wifi.SecurityWEP, 3},
	{"Dunder MiffLAN", wifi.SecurityWPA2, 36},
	{"Police Surveillance 2", wifi.SecurityWPA2, 44},
	{"I Believe Wi Can Fi", wifi.SecurityWEP, 9},
	{"Hot singles in your area", wifi.SecurityOpen, 11},
	{"Password is password", wifi.SecurityWPA2, 149},
	{"TacoBoutAGoodSignal", wifi.SecurityWPA3, 157},
	{"Wi-Fight the Feeling?", wifi.SecurityWEP, 13},
	{"xX_D4rkR0ut3r_Xx", wifi.SecurityWPA2, 48},
	{"Luke I am your WiFi", wifi.SecurityWEP, 2},
	{"FreeHugsAndWiFi", wifi.SecurityOpen, 40},
}

func (s *Scanner) funNetworks() []wifi.Network {
	if s.rand == nil {
		s.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	networks := make([]wifi.Network, 0, len(funNetworks))
	for i, f := range funNetworks {
		quality := s.rand.Intn(50) + 20
		networks = append(networks, wifi.Network{
			wifi.FieldAddress:   fmt.Sprintf("02:00:5e:10:00:%02x", i+1),
			wifi.FieldSSID:      f.ssid,
			wifi.FieldChannel:   f.channel,
			wifi.FieldFrequency: wifi.ChannelFrequency(f.channel),
			wifi.FieldMode:      "master",
			wifi.FieldQuality:   quality,
			wifi.FieldSignal:    quality - 110,
			wifi.FieldSecurity:  f.security,
		})
	}
	return networks
}
