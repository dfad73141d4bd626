package iwd

import (
	"errors"
	"fmt"
	"sort"

	"github.com/godbus/dbus/v5"
	"github.com/shazow/wifiseek/wifi"
)

const backendName = "iwd"

// IWD constants
const (
	iwdDest         = "net.connman.iwd"
	iwdPath         = "/"
	iwdDeviceIface  = "net.connman.iwd.Device"
	iwdNetworkIface = "net.connman.iwd.Network"
	iwdStationIface = "net.connman.iwd.Station"

	objectManagerIface = "org.freedesktop.DBus.ObjectManager"
)

// managedObjects is the reply of ObjectManager.GetManagedObjects: object
// path to interface name to property name.
type managedObjects map[dbus.ObjectPath]map[string]map[string]dbus.Variant

// orderedNetwork is one entry of Station.GetOrderedNetworks. Signal is in
// 100 * dBm.
type orderedNetwork struct {
	Path   dbus.ObjectPath
	Signal int16
}

// findStation returns the object path of the station device named iface,
// or of the first station if iface is empty, and whether it is powered.
func findStation(objects managedObjects, iface string) (dbus.ObjectPath, bool, error) {
	paths := make([]dbus.ObjectPath, 0, len(objects))
	for path := range objects {
		paths = append(paths, path)
	}
	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })

	for _, path := range paths {
		ifaces := objects[path]
		device, ok := ifaces[iwdDeviceIface]
		if !ok {
			continue
		}
		name, _ := variantValue[string](device, "Name")
		if iface != "" && name != iface {
			continue
		}
		if _, ok := ifaces[iwdStationIface]; !ok {
			// Devices in AP or ad-hoc mode have no Station interface.
			if iface != "" {
				return "", false, fmt.Errorf("device %q is not in station mode: %w", iface, wifi.ErrNotSupported)
			}
			continue
		}
		powered, _ := variantValue[bool](device, "Powered")
		return path, powered, nil
	}
	return "", false, fmt.Errorf("no wireless device %q: %w", iface, wifi.ErrNotFound)
}

// networkRecords turns the station's ordered networks into records using
// the Network properties found in objects.
func networkRecords(objects managedObjects, ordered []orderedNetwork) []wifi.Network {
	networks := make([]wifi.Network, 0, len(ordered))
	for _, entry := range ordered {
		props, ok := objects[entry.Path][iwdNetworkIface]
		if !ok {
			continue
		}
		dbm := int(entry.Signal) / 100
		strength := wifi.SignalToStrength(dbm)
		n := wifi.Network{
			wifi.FieldSignal:   dbm,
			wifi.FieldStrength: strength,
			wifi.FieldQuality:  strength,
			wifi.FieldMode:     "master",
		}
		if name, ok := variantValue[string](props, "Name"); ok && name != "" {
			n[wifi.FieldSSID] = name
		}
		if t, ok := variantValue[string](props, "Type"); ok {
			n[wifi.FieldSecurity] = securityType(t)
		}
		if connected, ok := variantValue[bool](props, "Connected"); ok {
			n[wifi.FieldConnected] = connected
		}
		networks = append(networks, n)
	}
	return networks
}

func securityType(t string) string {
	switch t {
	case "open":
		return wifi.SecurityOpen
	case "wep":
		return wifi.SecurityWEP
	case "psk":
		return wifi.SecurityWPA2
	case "8021x":
		return wifi.Security8021X
	}
	return t
}

func variantValue[T any](props map[string]dbus.Variant, key string) (T, bool) {
	var zero T
	v, ok := props[key]
	if !ok {
		return zero, false
	}
	val, ok := v.Value().(T)
	return val, ok
}

// classifyError maps D-Bus error names onto the wifi error kinds.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	var name string
	var dbusErr dbus.Error
	var dbusErrPtr *dbus.Error
	switch {
	case errors.As(err, &dbusErr):
		name = dbusErr.Name
	case errors.As(err, &dbusErrPtr):
		name = dbusErrPtr.Name
	default:
		return fmt.Errorf("%w: %w", wifi.ErrOperationFailed, err)
	}

	switch name {
	case "net.connman.iwd.NotFound", "org.freedesktop.DBus.Error.UnknownObject":
		return fmt.Errorf("%w: %w", wifi.ErrNotFound, err)
	case "net.connman.iwd.Busy", "net.connman.iwd.NotAvailable",
		"org.freedesktop.DBus.Error.ServiceUnknown", "org.freedesktop.DBus.Error.NameHasNoOwner":
		return fmt.Errorf("%w: %w", wifi.ErrNotAvailable, err)
	case "net.connman.iwd.PermissionDenied", "org.freedesktop.DBus.Error.AccessDenied":
		return fmt.Errorf("%w: %w", wifi.ErrPermission, err)
	case "net.connman.iwd.NotSupported", "net.connman.iwd.NotImplemented":
		return fmt.Errorf("%w: %w", wifi.ErrNotSupported, err)
	}
	return fmt.Errorf("%w: %w", wifi.ErrOperationFailed, err)
}
