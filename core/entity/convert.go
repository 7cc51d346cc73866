package entity

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Kind names the converter a field was declared with.
type Kind string

const (
	KindString   Kind = "string"
	KindBool     Kind = "bool"
	KindInt      Kind = "int"
	KindDate     Kind = "date"
	KindDateTime Kind = "datetime"
	KindURL      Kind = "url"
	KindStrings  Kind = "strings"
	KindNested   Kind = "nested"
	KindArray    Kind = "array"
)

// Wire layouts for date values.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04:05.000Z07:00"
)

// Converter turns wire text into a typed value and back.
// Decode must be pure. Encode is its inverse.
type Converter[V any] struct {
	Kind   Kind
	Decode func(raw string) (V, error)
	Encode func(v V) string

	// Export renders the value for Record. Nil means use Encode.
	Export func(v V) any
}

// ErrUnknownBoolToken is returned for tokens outside the recognized boolean set.
var ErrUnknownBoolToken = errors.New("unrecognized boolean token")

var boolTokens = map[string]bool{
	"true":  true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"false": false,
	"0":     false,
	"no":    false,
	"n":     false,
}

// ParseBool maps a provider token to a boolean. Tokens are trimmed and
// compared case-insensitively; anything outside the known set is an error.
func ParseBool(raw string) (bool, error) {
	v, ok := boolTokens[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return false, ErrUnknownBoolToken
	}
	return v, nil
}

// StringConverter is the identity converter.
var StringConverter = Converter[string]{
	Kind:   KindString,
	Decode: func(raw string) (string, error) { return raw, nil },
	Encode: func(v string) string { return v },
}

// BoolConverter uses ParseBool and encodes as true/false.
var BoolConverter = Converter[bool]{
	Kind:   KindBool,
	Decode: ParseBool,
	Encode: strconv.FormatBool,
	Export: func(v bool) any { return v },
}

// IntConverter parses base-10 integers.
var IntConverter = Converter[int64]{
	Kind: KindInt,
	Decode: func(raw string) (int64, error) {
		return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	},
	Encode: func(v int64) string { return strconv.FormatInt(v, 10) },
	Export: func(v int64) any { return v },
}

// ErrBadDate is returned for date text that is neither a calendar date nor a
// timestamp.
var ErrBadDate = errors.New("malformed date")

// dateTimeLayouts are the timestamp forms a date field may carry.
var dateTimeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05"}

// DateConverter keeps only the calendar date. A full timestamp is accepted
// and its date part kept as written; the result is midnight UTC.
var DateConverter = Converter[time.Time]{
	Kind:   KindDate,
	Decode: parseDate,
	Encode: func(v time.Time) string { return v.Format(DateLayout) },
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t, nil
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, ErrBadDate
}

// DateTimeConverter parses RFC 3339 timestamps with optional fractional seconds.
// Encoding writes millisecond precision, the finest the service stores, so
// sub-millisecond parts do not survive a round trip.
var DateTimeConverter = Converter[time.Time]{
	Kind: KindDateTime,
	Decode: func(raw string) (time.Time, error) {
		return time.Parse(time.RFC3339Nano, strings.TrimSpace(raw))
	},
	Encode: func(v time.Time) string { return v.Format(DateTimeLayout) },
}

// URLConverter parses absolute or relative URLs.
var URLConverter = Converter[url.URL]{
	Kind: KindURL,
	Decode: func(raw string) (url.URL, error) {
		u, err := url.Parse(strings.TrimSpace(raw))
		if err != nil {
			return url.URL{}, err
		}
		return *u, nil
	},
	Encode: func(v url.URL) string { return v.String() },
}
