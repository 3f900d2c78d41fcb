package evds

import (
	"strings"

	"github.com/wippyai/evds-bridge/errors"
)

// DateRange holds the validated start and end dates of a request. A single
// date expands to an equal start and end, which is exactly how the service
// expects it on the wire.
type DateRange struct {
	Start string
	End   string
}

const dateLen = 10 // DD-MM-YYYY

// ParseDateRange validates a caller-supplied date parameter. Accepted forms
// are a single "DD-MM-YYYY" or two comma-separated dates with an optional
// single space after the comma. Each component must be a real calendar date;
// Feb-29 is accepted only on leap years.
//
// A two-date range is not required to be chronologically ordered: the remote
// service accepts either order and reorders internally.
func ParseDateRange(s string) (DateRange, error) {
	if s == "" {
		return DateRange{}, errors.EmptyParameter(errors.PhaseValidate, "date")
	}

	if len(s) == dateLen {
		if err := validateDate(s); err != nil {
			return DateRange{}, err
		}
		return DateRange{Start: s, End: s}, nil
	}

	start, rest, found := strings.Cut(s, ",")
	if !found {
		return DateRange{}, errors.InvalidDate(s)
	}
	end := strings.TrimPrefix(rest, " ")
	if len(start) != dateLen || len(end) != dateLen {
		return DateRange{}, errors.InvalidDate(s)
	}
	if err := validateDate(start); err != nil {
		return DateRange{}, err
	}
	if err := validateDate(end); err != nil {
		return DateRange{}, err
	}
	return DateRange{Start: start, End: end}, nil
}

// daysInMonth[m] is the day count of month m in a non-leap year.
var daysInMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func validateDate(s string) error {
	if len(s) != dateLen || s[2] != '-' || s[5] != '-' {
		return errors.InvalidDate(s)
	}
	day, ok1 := twoDigits(s[0:2])
	month, ok2 := twoDigits(s[3:5])
	year, ok3 := fourDigits(s[6:10])
	if !ok1 || !ok2 || !ok3 {
		return errors.InvalidDate(s)
	}

	if month < 1 || month > 12 {
		return errors.New(errors.PhaseValidate, errors.KindInvalidDate).
			Param("date").
			Detail("month %02d out of range in %q", month, s).
			Build()
	}
	max := daysInMonth[month]
	if month == 2 && isLeapYear(year) {
		max = 29
	}
	if day < 1 || day > max {
		return errors.New(errors.PhaseValidate, errors.KindInvalidDate).
			Param("date").
			Detail("day %02d does not exist in month %02d of year %04d", day, month, year).
			Build()
	}
	if year < 1000 {
		return errors.InvalidDate(s)
	}
	return nil
}

func isLeapYear(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

func twoDigits(s string) (int, bool) {
	if !isDigit(s[0]) || !isDigit(s[1]) {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

func fourDigits(s string) (int, bool) {
	v := 0
	for i := 0; i < 4; i++ {
		if !isDigit(s[i]) {
			return 0, false
		}
		v = v*10 + int(s[i]-'0')
	}
	return v, true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
