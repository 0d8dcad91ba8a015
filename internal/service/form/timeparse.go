package form

import (
	"strconv"
	"strings"
)

const maxTimeDigits = 4

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MaskTime formats raw input as HH:MM while it is being typed.
func MaskTime(raw string) string {
	d := digitsOnly(raw)
	if len(d) > maxTimeDigits {
		d = d[:maxTimeDigits]
	}
	if len(d) > 2 {
		return d[:2] + ":" + d[2:]
	}
	return d
}

// ParseMinutes converts time text into minutes. The boolean is false when
// the minutes part exceeds 59.
//
//	""     -> 0
//	"45"   -> 45
//	"130"  -> 1h30 = 90
//	"1300" -> 13h00 = 780
func ParseMinutes(text string) (int, bool) {
	d := digitsOnly(text)

	var hours, minutes string
	switch {
	case len(d) == 0:
		return 0, true
	case len(d) <= 2:
		minutes = d
	case len(d) == 3:
		hours, minutes = d[:1], d[1:3]
	default:
		hours, minutes = d[:2], d[2:4]
	}

	m, _ := strconv.Atoi(minutes)
	if m > 59 {
		return 0, false
	}

	h := 0
	if hours != "" {
		h, _ = strconv.Atoi(hours)
	}

	return h*60 + m, true
}
