package report

import (
	"fmt"
	"time"

	"golang.org/x/exp/constraints"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	gib = 1 << 30
	tib = 1 << 40
)

var printer = message.NewPrinter(language.English)

// FormatSize renders a byte count in GB, switching to TB from 1024 GB up.
func FormatSize(bytes uint64) string {
	if bytes >= tib {
		return fmt.Sprintf("%.2f TB", float64(bytes)/tib)
	}
	return fmt.Sprintf("%.2f GB", float64(bytes)/gib)
}

// FormatCount renders n with English thousands separators.
func FormatCount[T constraints.Integer](n T) string {
	return printer.Sprintf("%d", n)
}

// FormatSeconds renders d as fractional seconds with millisecond precision.
func FormatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}

// FormatDuration renders d in the coarsest tier that applies, with at most
// two components: 90s is "1 m 30 s", 1500µs is "1 ms 500 µs".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	n := int64(d)
	days := n / int64(24*time.Hour)
	hours := n / int64(time.Hour) % 24
	minutes := n / int64(time.Minute) % 60
	seconds := n / int64(time.Second) % 60
	millis := n / int64(time.Millisecond) % 1000
	micros := n / int64(time.Microsecond) % 1000
	nanos := n % 1000

	switch {
	case days > 0:
		return fmt.Sprintf("%d d %d h", days, hours)
	case hours > 0:
		return fmt.Sprintf("%d h %d m", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%d m %d s", minutes, seconds)
	case seconds > 0:
		return fmt.Sprintf("%d s %d ms", seconds, millis)
	case millis > 0:
		return fmt.Sprintf("%d ms %d µs", millis, micros)
	case micros > 0:
		return fmt.Sprintf("%d µs %d ns", micros, nanos)
	default:
		return fmt.Sprintf("%d ns", nanos)
	}
}
