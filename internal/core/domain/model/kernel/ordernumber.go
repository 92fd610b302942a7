package kernel

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// orderNumberPrefix is the literal that leads every generated order number.
const orderNumberPrefix = "K"

// FallbackRegionCode builds a degraded region code of the form "X" plus one
// pseudo-random uppercase letter. It is used when no two-letter state code
// can be derived from the delivery address, so order numbering can proceed
// with a syntactically valid identifier instead of failing the submission.
func FallbackRegionCode() string {
	letters := "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	return "X" + string(letters[rand.Intn(len(letters))])
}

// NormalizeRegionCode reduces a raw state value to exactly two uppercase
// letters. Returns "" when the input is empty or the placeholder "XX".
func NormalizeRegionCode(state string) string {
	s := strings.ToUpper(strings.TrimSpace(state))
	if s == "" || s == "XX" {
		return ""
	}
	if len(s) > 2 {
		s = s[:2]
	}
	return s
}

// OrderNumberPrefix produces the per-day/per-region order number prefix
// "K<MM><DD><YY><REGION>". Sequence numbers are appended by the caller to
// form the full order number, e.g. "K111925FL1".
func OrderNumberPrefix(day time.Time, regionCode string) string {
	return fmt.Sprintf("%s%02d%02d%02d%s",
		orderNumberPrefix, int(day.Month()), day.Day(), day.Year()%100, regionCode)
}

// FormatOrderNumber appends a sequence number to the per-day prefix.
func FormatOrderNumber(day time.Time, regionCode string, sequence int) string {
	return fmt.Sprintf("%s%d", OrderNumberPrefix(day, regionCode), sequence)
}
