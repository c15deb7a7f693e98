package utils

import (
	"errors"
	"strings"
	"time"
)

// DateTimeLayouts are tried in order; the first successful parse wins.
var DateTimeLayouts = []string{
	"2006-01-02T15:04", // HTML5 datetime-local
	"2006-01-02 15:04",
	"02-01-2006 15:04",
	"02/01/2006 15:04",
}

// isoLayouts cover ISO-8601 with or without seconds, with a T or space
// separator, and with a Z, +HH:MM or +HHMM offset or none at all.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z0700",
	"2006-01-02 15:04Z07:00",
	"2006-01-02 15:04Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

var ErrUnknownDateTimeFormat = errors.New("datetime has wrong format")

// ParseDateTime parses value with DateTimeLayouts followed by ISO-8601.
// Layouts without an offset are interpreted in loc.
func ParseDateTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if loc == nil {
		loc = time.UTC
	}

	for _, layout := range DateTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}

	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, ErrUnknownDateTimeFormat
}
