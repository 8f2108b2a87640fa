package domain

import "fmt"

// FormatDistance renders a distance in meters as a human-readable string,
// e.g. "800m" or "5.00km".
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%.0fm", meters)
	}
	return fmt.Sprintf("%.2fkm", meters/1000)
}

// FormatDuration renders a duration in seconds as "1h 2m 3s", dropping
// leading zero units.
func FormatDuration(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, secs)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}

// FormatPace converts a speed in meters per second to a min/km pace string,
// e.g. "4:30/km". Non-positive speeds render as "N/A".
func FormatPace(metersPerSecond float64) string {
	if metersPerSecond <= 0 {
		return "N/A"
	}

	secondsPerKm := 1000 / metersPerSecond
	minutes := int(secondsPerKm) / 60
	seconds := int(secondsPerKm) % 60

	return fmt.Sprintf("%d:%02d/km", minutes, seconds)
}
