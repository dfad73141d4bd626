package wifi

// ChannelFrequency returns the center frequency in GHz of a 2.4 or 5 GHz
// channel, or 0 for unknown channels.
func ChannelFrequency(channel int) float64 {
	var mhz int
	switch {
	case channel == 14:
		mhz = 2484
	case channel >= 1 && channel <= 13:
		mhz = 2407 + 5*channel
	case channel >= 32 && channel <= 177:
		mhz = 5000 + 5*channel
	default:
		return 0
	}
	return float64(mhz) / 1000
}

// FrequencyChannel returns the channel number for a center frequency in
// MHz, or 0 if it is not a known Wi-Fi channel.
func FrequencyChannel(mhz int) int {
	switch {
	case mhz == 2484:
		return 14
	case mhz >= 2412 && mhz <= 2472:
		return (mhz - 2407) / 5
	case mhz >= 5160 && mhz <= 5885:
		return (mhz - 5000) / 5
	case mhz >= 5955 && mhz <= 7115:
		return (mhz - 5950) / 5
	}
	return 0
}

// StrengthToSignal converts a 0-100 strength percentage into an
// approximate dBm level.
func StrengthToSignal(strength uint8) int {
	if strength > 100 {
		strength = 100
	}
	return int(strength)/2 - 100
}

// SignalToStrength converts a dBm level into a 0-100 strength percentage.
// Non-negative levels are treated as unknown.
func SignalToStrength(dbm int) uint8 {
	if dbm >= 0 || dbm <= -100 {
		return 0
	}
	strength := 2 * (dbm + 100)
	if strength > 100 {
		strength = 100
	}
	return uint8(strength)
}
