package memory

import "fmt"

type Memory int64

const (
	Byte     Memory = 1
	Kilobyte        = 1024 * Byte
	Megabyte        = 1024 * Kilobyte
	Gigabyte        = 1024 * Megabyte
)

func (d Memory) Bytes() int64 { return int64(d) }

func (d Memory) Kilobytes() int64 { return int64(d) / int64(Kilobyte) }

func (d Memory) Megabytes() int64 { return int64(d) / int64(Megabyte) }

func (d Memory) Gigabytes() int64 { return int64(d) / int64(Gigabyte) }

// String renders the size in the largest unit it fills, used when logging
// source and output sizes.
func (d Memory) String() string {
	switch {
	case d >= Gigabyte:
		return fmt.Sprintf("%.2fGB", float64(d)/float64(Gigabyte))
	case d >= Megabyte:
		return fmt.Sprintf("%.2fMB", float64(d)/float64(Megabyte))
	case d >= Kilobyte:
		return fmt.Sprintf("%.2fKB", float64(d)/float64(Kilobyte))
	default:
		return fmt.Sprintf("%dB", d.Bytes())
	}
}

// Ratio is the fraction of the original size that remains, e.g. how much
// of the source survived minification. A zero original yields zero.
func Ratio(original, reduced Memory) float64 {
	if original <= 0 {
		return 0
	}

	return float64(reduced) / float64(original)
}
