// Package validate provides the shared field-validation primitives pages
// compose. Pages hold no base-class hierarchy: date handling is a value type
// any page can embed in its checks.
package validate

import (
	"strconv"
	"strings"
	"time"
)

// String reads a string field from a body, returning "" for absent or
// non-string values.
func String(body map[string]any, key string) string {
	v, ok := body[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Strings reads a multi-value field. Form layers deliver either []string or
// []any; both are accepted.
func Strings(body map[string]any, key string) []string {
	switch v := body[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Int parses an integer field, accepting stored numbers and form strings.
func Int(body map[string]any, key string) (int, bool) {
	switch v := body[key].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	default:
		return 0, false
	}
}

// DateParts holds the three components of a split date field, the way form
// pages capture dates (separate day/month/year inputs).
type DateParts struct {
	Day   string
	Month string
	Year  string
}

// DatePartsFromBody reads prefix-day/-month/-year fields from a body.
func DatePartsFromBody(body map[string]any, prefix string) DateParts {
	return DateParts{
		Day:   String(body, prefix+"-day"),
		Month: String(body, prefix+"-month"),
		Year:  String(body, prefix+"-year"),
	}
}

// DateKeys returns the body field names a date with this prefix occupies,
// for building page allowlists.
func DateKeys(prefix string) []string {
	return []string{prefix + "-day", prefix + "-month", prefix + "-year"}
}

// Complete reports whether all three components were supplied.
func (p DateParts) Complete() bool {
	return p.Day != "" && p.Month != "" && p.Year != ""
}

// Time parses the components into a date. A date is valid only when all
// three components parse and name a real calendar date: time.Date normalises
// overflow (Feb 30 becomes Mar 2), so the result is checked against the
// inputs.
func (p DateParts) Time() (time.Time, bool) {
	day, err1 := strconv.Atoi(strings.TrimSpace(p.Day))
	month, err2 := strconv.Atoi(strings.TrimSpace(p.Month))
	year, err3 := strconv.Atoi(strings.TrimSpace(p.Year))
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	if year < 1 || month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// Valid reports whether the components name a real calendar date.
func (p DateParts) Valid() bool {
	_, ok := p.Time()
	return ok
}

// TimeValid reports whether value is a 24-hour HH:MM clock time.
func TimeValid(value string) bool {
	parts := strings.Split(value, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return false
	}
	hour, err1 := strconv.Atoi(parts[0])
	minute, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return false
	}
	return hour >= 0 && hour <= 23 && minute >= 0 && minute <= 59
}

// At combines the date with a HH:MM clock time. TimeValid must hold.
func (p DateParts) At(clock string) (time.Time, bool) {
	date, ok := p.Time()
	if !ok || !TimeValid(clock) {
		return time.Time{}, false
	}
	hour, _ := strconv.Atoi(clock[:2])
	minute, _ := strconv.Atoi(clock[3:])
	return date.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute), true
}

// SameDay reports whether two instants fall on the same calendar day in UTC.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// AfterDay reports whether t falls on a later calendar day than ref.
func AfterDay(t, ref time.Time) bool {
	ty, tm, td := t.UTC().Date()
	ry, rm, rd := ref.UTC().Date()
	return time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC).
		After(time.Date(ry, rm, rd, 0, 0, 0, 0, time.UTC))
}

// WithinLastDays reports whether t falls within the n calendar days before
// now (inclusive of today).
func WithinLastDays(t, now time.Time, n int) bool {
	if AfterDay(t, now) {
		return false
	}
	earliest := now.UTC().AddDate(0, 0, -n)
	return !t.UTC().Before(time.Date(earliest.Year(), earliest.Month(), earliest.Day(), 0, 0, 0, 0, time.UTC))
}

// Email reports whether value has the shape local@domain.tld. Pages layer
// their own domain rules on top.
func Email(value string) bool {
	at := strings.Index(value, "@")
	if at <= 0 || at == len(value)-1 {
		return false
	}
	domain := value[at+1:]
	dot := strings.LastIndex(domain, ".")
	return dot > 0 && dot < len(domain)-1 && !strings.Contains(domain, "@")
}

// IntInRange formats no message itself; it reports whether the named field
// parses to an integer within [min, max].
func IntInRange(body map[string]any, key string, min, max int) bool {
	n, ok := Int(body, key)
	return ok && n >= min && n <= max
}

// OneOf reports whether the field holds one of the allowed tokens.
func OneOf(body map[string]any, key string, allowed ...string) bool {
	v := String(body, key)
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// Require adds the message under the field key when the field is empty.
func Require(errs map[string]string, body map[string]any, field, message string) {
	if String(body, field) == "" {
		errs[field] = message
	}
}
