package ui

import "fmt"

// FormatByteSize renders a byte count in decimal units, picking the smallest
// unit that keeps the magnitude under 1000. 2300000 becomes "2.30 Mb".
func FormatByteSize(n int64) string {
	units := []string{"bytes", "Kb", "Mb", "Gb"}
	factor := float64(1)
	for _, unit := range units {
		if float64(n)/factor < 1000 {
			return fmt.Sprintf("%.2f %s", float64(n)/factor, unit)
		}
		factor *= 1000
	}
	return fmt.Sprintf("%.2f Tb", float64(n)/factor)
}
