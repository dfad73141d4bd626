package config

// DefaultInterface is the usual Wi-Fi device on macOS.
const DefaultInterface = "en0"
