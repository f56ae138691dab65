// Package numformat converts raw Excel serial values to calendar dates and
// renders raw cell values to their display string using a number-format
// code, mirroring Excel's own rendering rules (ECMA-376 Part 1, 18.8.30).
// Format-string tokenizing is delegated to github.com/xuri/nfp; this
// package implements the rendering logic on top of its token stream.
package numformat

import (
	"fmt"
	"math"
	"time"
)

// ConvertDate converts an Excel serial number to a [time.Time] under the
// 1900 date system, compensating for the historical Lotus 1-2-3 leap-year
// bug Excel still honors (serial 60 is Excel's nonexistent 1900-02-29, which
// time.Time cannot represent).
//
//   - serial == 0      -> midnight on 1900-01-01
//   - serial >= 61     -> subtract one day to compensate for the phantom leap day
//   - 1 <= serial <= 60 -> no compensation (serial 60 yields 1900-03-01)
//
// This arithmetic is a property of the serial-date encoding itself, not of
// any particular container format — a BIFF12 .xlsb workbook and an OOXML
// .xlsx workbook both store the same serial number under the same epoch and
// leap-year quirk, so the conversion is kept close to a known-correct form
// rather than re-derived here.
func ConvertDate(serial float64) (time.Time, error) {
	if math.IsNaN(serial) || math.IsInf(serial, 0) {
		return time.Time{}, fmt.Errorf("numformat: ConvertDate: invalid value %v", serial)
	}
	if serial < 0 {
		return time.Time{}, fmt.Errorf("numformat: ConvertDate: negative serial %v not supported", serial)
	}
	// Excel dates only reach serial 2,958,465 (year 9999-12-31); values above
	// that would overflow time.Duration's int64-nanosecond arithmetic.
	const maxSerial = 2_958_466
	if serial > maxSerial {
		return time.Time{}, fmt.Errorf("numformat: ConvertDate: serial %v exceeds maximum supported value %d", serial, maxSerial)
	}

	fracSec, dayRollover := serialToFracSec(serial)

	base := time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC)
	intPart := int(serial) + dayRollover
	switch {
	case intPart == 0:
		return time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(fracSec) * time.Second), nil
	case intPart >= 61:
		return base.Add(time.Duration(intPart-1)*24*time.Hour + time.Duration(fracSec)*time.Second), nil
	default:
		return base.Add(time.Duration(intPart)*24*time.Hour + time.Duration(fracSec)*time.Second), nil
	}
}

// ConvertDateEx converts an Excel serial number to a [time.Time], respecting
// the workbook's date system. Pass the workbook's Date1904 flag.
//
// When date1904 is false this is identical to [ConvertDate]. When true, the
// 1904 date system applies: serial 0 is 1904-01-01 and there is no phantom
// leap-day correction (the Lotus 1-2-3 bug doesn't apply to the 1904 epoch).
func ConvertDateEx(serial float64, date1904 bool) (time.Time, error) {
	if !date1904 {
		return ConvertDate(serial)
	}
	if math.IsNaN(serial) || math.IsInf(serial, 0) {
		return time.Time{}, fmt.Errorf("numformat: ConvertDateEx: invalid value %v", serial)
	}
	if serial < 0 {
		return time.Time{}, fmt.Errorf("numformat: ConvertDateEx: negative serial %v not supported", serial)
	}
	// A 1904-system serial is 1462 less than the 1900-system serial of the
	// same date, so its maximum representable serial is the 1900-system
	// maximum minus 1462.
	const maxSerial = 2_958_466 - 1462
	if serial > maxSerial {
		return time.Time{}, fmt.Errorf("numformat: ConvertDateEx: serial %v exceeds maximum supported value %d", serial, maxSerial)
	}

	fracSec, dayRollover := serialToFracSec(serial)
	base := time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)
	intPart := int(serial) + dayRollover
	return base.Add(time.Duration(intPart)*24*time.Hour + time.Duration(fracSec)*time.Second), nil
}

// serialToFracSec converts the fractional-day part of an Excel serial to a
// whole-second count within the day (0-86399), plus a day-rollover flag (0
// or 1) for when rounding pushes the result to exactly midnight of the next
// day rather than clamping to 86399.
func serialToFracSec(serial float64) (fracSec int64, dayRollover int) {
	const roundEpsilon = 1e-9
	fracDay := (serial - math.Trunc(serial)) + roundEpsilon
	const nanosInADay = float64(24 * 60 * 60 * 1e9)
	durNanos := time.Duration(fracDay * nanosInADay)
	ns := int(durNanos % time.Second)
	secs := int64(durNanos / time.Second)
	if ns > 500_000_000 {
		secs++
	}
	if secs < 0 {
		secs = 0
	}
	rollover := int(secs / 86400)
	secs %= 86400
	return secs, rollover
}
