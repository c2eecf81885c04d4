// Package format holds the pure display helpers shared by every table printer.
// All functions are total: they never fail and never allocate more than the
// returned string.
package format

import (
	"fmt"
	"math"
	"time"
	"unicode/utf8"
)

// Missing is printed in place of an absent upstream value.
const Missing = "-"

// Ellipsis marks a truncated field.
const Ellipsis = "…"

// USD formats a monetary magnitude, scaled to K/M/B/T from one thousand upwards.
// Examples: "$999.99", "$1.0K", "$2.5M", "$1.0T"
func USD(n float64) string {
	a := math.Abs(n)
	switch {
	case a >= 1e12:
		return fmt.Sprintf("$%.1fT", n/1e12)
	case a >= 1e9:
		return fmt.Sprintf("$%.1fB", n/1e9)
	case a >= 1e6:
		return fmt.Sprintf("$%.1fM", n/1e6)
	case a >= 1e3:
		return fmt.Sprintf("$%.1fK", n/1e3)
	}
	return fmt.Sprintf("$%.2f", n)
}

// Price formats a unit price, keeping more decimals for sub-cent assets.
func Price(n float64) string {
	switch {
	case n >= 1.0:
		return fmt.Sprintf("$%.2f", n)
	case n >= 0.01:
		return fmt.Sprintf("$%.4f", n)
	}
	return fmt.Sprintf("$%.8f", n)
}

// Percent formats a change with an explicit sign; zero is "+0.00%".
func Percent(n float64) string {
	if n == 0 {
		n = 0 // -0 prints as "-0.00" otherwise
	}
	if n >= 0 {
		return fmt.Sprintf("+%.2f%%", n)
	}
	return fmt.Sprintf("%.2f%%", n)
}

// Supply formats a circulating or total supply with K/M/B suffixes.
func Supply(n float64) string {
	switch {
	case n >= 1e9:
		return fmt.Sprintf("%.1fB", n/1e9)
	case n >= 1e6:
		return fmt.Sprintf("%.1fM", n/1e6)
	case n >= 1e3:
		return fmt.Sprintf("%.1fK", n/1e3)
	}
	return fmt.Sprintf("%.0f", n)
}

// Truncate shortens s to at most maxRunes characters, the last being Ellipsis.
// Counting is by rune so multi-byte text is never split. A non-positive
// budget yields the empty string.
func Truncate(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxRunes-1]) + Ellipsis
}

// TruncateAddress shortens a contract address to "0x1234...abcd" form.
// Addresses of 13 characters or fewer are returned unchanged.
func TruncateAddress(addr string) string {
	runes := []rune(addr)
	if len(runes) <= 13 {
		return addr
	}
	return string(runes[:6]) + "..." + string(runes[len(runes)-4:])
}

// Latency formats a round-trip time for the status report.
// Examples: "850ms", "1.24s"
func Latency(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// ---------------------------------------------------------------------------
// Optional values
// ---------------------------------------------------------------------------

// OptUSD formats *n with USD, or Missing when nil.
func OptUSD(n *float64) string { return opt(n, USD) }

// OptPrice formats *n with Price, or Missing when nil.
func OptPrice(n *float64) string { return opt(n, Price) }

// OptPercent formats *n with Percent, or Missing when nil.
func OptPercent(n *float64) string { return opt(n, Percent) }

// OptSupply formats *n with Supply, or Missing when nil.
func OptSupply(n *float64) string { return opt(n, Supply) }

// OptString returns *s, or Missing when nil or empty.
func OptString(s *string) string {
	if s == nil || *s == "" {
		return Missing
	}
	return *s
}

// OptInt formats *n in base 10, or Missing when nil.
func OptInt(n *int64) string {
	if n == nil {
		return Missing
	}
	return fmt.Sprintf("%d", *n)
}

// OptBool formats *b with Bool, or Missing when nil.
func OptBool(b *bool) string {
	if b == nil {
		return Missing
	}
	return Bool(*b)
}

// Bool renders a flag as "Yes"/"No".
func Bool(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func opt(n *float64, f func(float64) string) string {
	if n == nil {
		return Missing
	}
	return f(*n)
}
