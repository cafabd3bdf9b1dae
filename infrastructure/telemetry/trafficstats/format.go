package trafficstats

import "fmt"

// FormatRate renders bytes/sec with binary units, e.g. "1.2 KiB/s".
func FormatRate(bytesPerSecond uint64) string {
	return formatBinary(float64(bytesPerSecond), "/s")
}

// FormatTotal renders a byte count with binary units, e.g. "3.0 MiB".
func FormatTotal(bytes uint64) string {
	return formatBinary(float64(bytes), "")
}

func formatBinary(value float64, suffix string) string {
	units := []string{"B", "KiB", "MiB", "GiB"}

	unitIdx := 0
	for value >= 1024 && unitIdx < len(units)-1 {
		value /= 1024
		unitIdx++
	}

	if unitIdx == 0 {
		return fmt.Sprintf("%.0f %s%s", value, units[unitIdx], suffix)
	}
	return fmt.Sprintf("%.1f %s%s", value, units[unitIdx], suffix)
}
