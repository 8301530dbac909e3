package face

import (
	"fmt"
	"strconv"
	"time"
)

const (
	timeLayout = "15:04:05\n03:04:05 PM"
	dateLayout = "Mon Jan"

	// Buffer capacities of the formatted strings. The longest time string is
	// 20 bytes ("23:59:59\n11:59:59 PM"); the longest date is 12 bytes
	// ("Wed Sep 30th").
	timeBufLen = 21
	dateBufLen = 13
)

// Suffixer returns the ordinal suffix for a day of the month.
type Suffixer func(day int) string

// LastDigitSuffix picks the suffix from the last digit only, so 11, 12 and
// 13 come out as "11st", "12nd" and "13rd". This is how the watchface has
// always rendered dates and it stays the default.
func LastDigitSuffix(day int) string {
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// OrdinalSuffix is the English ordinal rule: 11th, 12th, 13th, 21st...
func OrdinalSuffix(day int) string {
	if n := day % 100; n >= 11 && n <= 13 {
		return "th"
	}
	return LastDigitSuffix(day)
}

const (
	OrdinalsLastDigit = "last-digit"
	OrdinalsEnglish   = "english"
)

// ParseSuffixer maps a config name to a Suffixer. The empty name selects
// LastDigitSuffix.
func ParseSuffixer(name string) (Suffixer, error) {
	switch name {
	case "", OrdinalsLastDigit:
		return LastDigitSuffix, nil
	case OrdinalsEnglish:
		return OrdinalSuffix, nil
	default:
		return nil, fmt.Errorf("unknown ordinal rule %q (want %q or %q)", name, OrdinalsLastDigit, OrdinalsEnglish)
	}
}

// AppendTime appends "HH:MM:SS\nhh:mm:ss AM|PM" to dst.
func AppendTime(dst []byte, t time.Time) []byte {
	return t.AppendFormat(dst, timeLayout)
}

// AppendDate appends "Weekday Month Day<suffix>" to dst, for example
// "Mon Jan 5th". Days below 10 have no leading zero.
func AppendDate(dst []byte, t time.Time, suffix Suffixer) []byte {
	if suffix == nil {
		suffix = LastDigitSuffix
	}
	day := t.Day()
	dst = t.AppendFormat(dst, dateLayout)
	dst = append(dst, ' ')
	dst = strconv.AppendInt(dst, int64(day), 10)
	return append(dst, suffix(day)...)
}

func FormatTime(t time.Time) string {
	var buf [timeBufLen]byte
	return string(AppendTime(buf[:0], t))
}

func FormatDate(t time.Time, suffix Suffixer) string {
	var buf [dateBufLen]byte
	return string(AppendDate(buf[:0], t, suffix))
}
