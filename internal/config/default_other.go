//go:build !darwin

package config

// DefaultInterface is the usual Wi-Fi device name on Linux.
const DefaultInterface = "wlan0"
