//go:build linux

package iwd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/shazow/wifiseek/wifi"
)

var (
	scanTimeout      = 15 * time.Second
	scanPollInterval = 250 * time.Millisecond
)

// Scanner implements wifi.Scanner using iwd over the system D-Bus.
type Scanner struct {
	conn   *dbus.Conn
	logger *slog.Logger
}

// New creates a new iwd.Scanner. It fails with wifi.ErrNotAvailable if iwd
// is not running.
func New(logger *slog.Logger) (*Scanner, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to system bus: %w", wifi.ErrNotAvailable)
	}
	s := &Scanner{conn: conn, logger: logger}
	// A simple way to check for availability is to list its objects.
	if _, err := s.managedObjects(context.Background()); err != nil {
		return nil, fmt.Errorf("iwd is not available: %w", wifi.ErrNotAvailable)
	}
	return s, nil
}

// Scan triggers a station scan on iface, waits for it to finish and
// returns the networks iwd orders by signal.
func (s *Scanner) Scan(ctx context.Context, iface string) ([]wifi.Network, error) {
	objects, err := s.managedObjects(ctx)
	if err != nil {
		return nil, s.scanError(iface, classifyError(err))
	}
	station, powered, err := findStation(objects, iface)
	if err != nil {
		return nil, s.scanError(iface, err)
	}
	if !powered {
		return nil, s.scanError(iface, wifi.ErrWirelessDisabled)
	}

	s.requestScan(ctx, station, iface)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var ordered []orderedNetwork
	err = s.conn.Object(iwdDest, station).CallWithContext(ctx, iwdStationIface+".GetOrderedNetworks", 0).Store(&ordered)
	if err != nil {
		return nil, s.scanError(iface, classifyError(err))
	}

	// The scan may have exported new Network objects.
	objects, err = s.managedObjects(ctx)
	if err != nil {
		return nil, s.scanError(iface, classifyError(err))
	}
	networks := networkRecords(objects, ordered)
	s.log().Debug("iwd scan finished", "interface", iface, "networks", len(networks))
	return networks, nil
}

// requestScan starts a scan and polls the station's Scanning property
// until it clears. A rejected request (iwd is busy, or scanned recently)
// falls back to the networks iwd already knows.
func (s *Scanner) requestScan(ctx context.Context, station dbus.ObjectPath, iface string) {
	obj := s.conn.Object(iwdDest, station)
	if err := obj.CallWithContext(ctx, iwdStationIface+".Scan", 0).Err; err != nil {
		s.log().Debug("scan request rejected, using cached results", "interface", iface, "error", err)
		return
	}

	ticker := time.NewTicker(scanPollInterval)
	defer ticker.Stop()
	timeout := time.NewTimer(scanTimeout)
	defer timeout.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timeout.C:
			s.log().Warn("timed out waiting for scan results", "interface", iface, "timeout", scanTimeout)
			return
		case <-ticker.C:
			v, err := obj.GetProperty(iwdStationIface + ".Scanning")
			if err != nil {
				return
			}
			if scanning, ok := v.Value().(bool); !ok || !scanning {
				return
			}
		}
	}
}

func (s *Scanner) managedObjects(ctx context.Context) (managedObjects, error) {
	objects := managedObjects{}
	err := s.conn.Object(iwdDest, iwdPath).CallWithContext(ctx, objectManagerIface+".GetManagedObjects", 0).Store(&objects)
	return objects, err
}

func (s *Scanner) scanError(iface string, err error) *wifi.ScanError {
	return &wifi.ScanError{Backend: backendName, Interface: iface, Err: err}
}

func (s *Scanner) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}
