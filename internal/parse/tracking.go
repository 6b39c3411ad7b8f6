package parse

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxTrackingLength matches the tracked_shipments key column.
const MaxTrackingLength = 32

var controlRe = regexp.MustCompile(`[[:cntrl:]]`)

// ParseTracking checks a tracking number typed by a visitor and returns it
// trimmed but otherwise unchanged. The backend owns the number format, so
// only empty, oversized and control-character input is rejected here.
func ParseTracking(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("tracking number is empty")
	}
	if utf8.RuneCountInString(s) > MaxTrackingLength {
		return "", fmt.Errorf("tracking number is longer than %d characters", MaxTrackingLength)
	}
	if controlRe.MatchString(s) {
		return "", fmt.Errorf("unable to parse tracking number: %q", raw)
	}
	return s, nil
}
