// Package coerce converts raw values from the Warsaw Open Data API into
// typed Go values. The API encodes most fields as strings, with several
// competing conventions for numbers, booleans and timestamps; each function
// here handles one of them.
//
// All functions are pure. A nil value or an empty string coerces to a nil
// result without error; a value that is already of the target type is
// returned unchanged; anything else that cannot be converted yields a
// *CoercionError.
package coerce

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Timestamp layouts used across the API's datasets.
const (
	layoutDateTime       = "2006-01-02 15:04:05"
	layoutDateTimeT      = "2006-01-02T15:04:05"
	layoutDateTimeOracle = "02-Jan-06 03.04.05.000000 PM"
	layoutDate           = "20060102"
	layoutClockTime      = "15:04:05"
)

// CoercionError reports a raw value that cannot be converted to its
// declared type.
type CoercionError struct {
	Value  any
	Target string
	Err    error
}

func (e *CoercionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot coerce %v to %s: %v", e.Value, e.Target, e.Err)
	}
	return fmt.Sprintf("cannot coerce %v to %s", e.Value, e.Target)
}

func (e *CoercionError) Unwrap() error { return e.Err }

func coercionErr(v any, target string, err error) *CoercionError {
	return &CoercionError{Value: v, Target: target, Err: err}
}

// isEmpty reports whether the raw value stands for "no value" in the API:
// a missing JSON value or a blank string.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// Int coerces a decimal string or a JSON number to an integer.
func Int(v any) (*int64, error) {
	if isEmpty(v) {
		return nil, nil
	}
	switch n := v.(type) {
	case int64:
		return &n, nil
	case int:
		i := int64(n)
		return &i, nil
	case float64:
		if n != math.Trunc(n) {
			return nil, coercionErr(v, "int", nil)
		}
		i := int64(n)
		return &i, nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return nil, coercionErr(v, "int", err)
		}
		return &i, nil
	default:
		return nil, coercionErr(v, "int", nil)
	}
}

// Float coerces a decimal string or a JSON number to a float. Strings may
// use a comma as the decimal separator, as several datasets do.
func Float(v any) (*float64, error) {
	if isEmpty(v) {
		return nil, nil
	}
	switch n := v.(type) {
	case float64:
		return &n, nil
	case int:
		f := float64(n)
		return &f, nil
	case int64:
		f := float64(n)
		return &f, nil
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(n), ",", ".")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, coercionErr(v, "float", err)
		}
		return &f, nil
	default:
		return nil, coercionErr(v, "float", nil)
	}
}

// Bool coerces the API's Polish yes/no tokens ("TAK"/"NIE", any case) to a
// boolean. Unrecognized tokens are an error, not a default.
func Bool(v any) (*bool, error) {
	if isEmpty(v) {
		return nil, nil
	}
	switch b := v.(type) {
	case bool:
		return &b, nil
	case string:
		switch strings.ToUpper(strings.TrimSpace(b)) {
		case "TAK":
			t := true
			return &t, nil
		case "NIE":
			f := false
			return &f, nil
		default:
			return nil, coercionErr(v, "bool", nil)
		}
	default:
		return nil, coercionErr(v, "bool", nil)
	}
}

// String coerces a scalar raw value to a string. JSON numbers are
// formatted without a trailing fraction when integral; some datasets flip
// between string and numeric encodings of the same identifier field.
func String(v any) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(s), nil
	case int64:
		return strconv.FormatInt(s, 10), nil
	case bool:
		return strconv.FormatBool(s), nil
	default:
		return "", coercionErr(v, "string", nil)
	}
}

func parseTime(v any, target, layout, s string) (*time.Time, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return nil, coercionErr(v, target, err)
	}
	return &t, nil
}

func timeString(v any, target string) (string, bool, *time.Time, error) {
	if isEmpty(v) {
		return "", false, nil, nil
	}
	switch t := v.(type) {
	case time.Time:
		return "", false, &t, nil
	case string:
		return strings.TrimSpace(t), true, nil, nil
	default:
		return "", false, nil, coercionErr(v, target, nil)
	}
}

// DateTime coerces a "YYYY-MM-DD HH:MM:SS" timestamp. The API appends
// sub-second digits on some datasets; only the first 19 bytes are parsed.
func DateTime(v any) (*time.Time, error) {
	s, ok, t, err := timeString(v, "datetime")
	if !ok {
		return t, err
	}
	if len(s) > len(layoutDateTime) {
		s = s[:len(layoutDateTime)]
	}
	return parseTime(v, "datetime", layoutDateTime, s)
}

// DateTimeT coerces an ISO-like "YYYY-MM-DDTHH:MM:SS" timestamp.
func DateTimeT(v any) (*time.Time, error) {
	s, ok, t, err := timeString(v, "datetime")
	if !ok {
		return t, err
	}
	return parseTime(v, "datetime", layoutDateTimeT, s)
}

// DateTimeOracle coerces the "01-APR-22 12.38.06.000000 PM" stamps that
// the WFS datasets use for their update dates.
func DateTimeOracle(v any) (*time.Time, error) {
	s, ok, t, err := timeString(v, "datetime")
	if !ok {
		return t, err
	}
	parsed, perr := time.Parse(layoutDateTimeOracle, s)
	if perr != nil {
		// Some rows carry a 24-hour value next to the meridiem marker.
		trimmed := strings.TrimSuffix(strings.TrimSuffix(s, " PM"), " AM")
		parsed, perr = time.Parse("02-Jan-06 15.04.05.000000", trimmed)
		if perr != nil {
			return nil, coercionErr(v, "datetime", perr)
		}
	}
	return &parsed, nil
}

// Date coerces a compact "YYYYMMDD" date, which arrives either as a string
// or as a JSON number.
func Date(v any) (*time.Time, error) {
	if n, isNum := v.(float64); isNum {
		v = strconv.FormatFloat(n, 'f', -1, 64)
	}
	s, ok, t, err := timeString(v, "date")
	if !ok {
		return t, err
	}
	return parseTime(v, "date", layoutDate, s)
}

// ClockTime coerces a "HH:MM:SS" time of day onto the zero date.
func ClockTime(v any) (*time.Time, error) {
	s, ok, t, err := timeString(v, "time")
	if !ok {
		return t, err
	}
	return parseTime(v, "time", layoutClockTime, s)
}
