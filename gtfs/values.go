package gtfs

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar date written as YYYYMMDD.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DecodeDate parses a YYYYMMDD date. Anything that is not exactly eight digits
// naming a real calendar day fails with ErrInvalidDate.
func DecodeDate(raw string) (Date, error) {
	s := strings.TrimSpace(raw)
	if len(s) != 8 || !allDigits(s) {
		return Date{}, decodeErr(ErrInvalidDate, raw)
	}
	year, _ := strconv.Atoi(s[0:4])
	month, _ := strconv.Atoi(s[4:6])
	day, _ := strconv.Atoi(s[6:8])
	if month < 1 || month > 12 || day < 1 || day > daysIn(time.Month(month), year) {
		return Date{}, decodeErr(ErrInvalidDate, raw)
	}
	return Date{Year: year, Month: time.Month(month), Day: day}, nil
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (d Date) String() string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, int(d.Month), d.Day)
}

// Time returns midnight of the date in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

func (d Date) MarshalCSV() (string, error) {
	return d.String(), nil
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// ServiceTime is a number of seconds since midnight of the service day.
// Values of 24:00:00 and later belong to trips that run past midnight.
type ServiceTime int

// maxServiceHours is the largest hour accepted, so that any accepted time
// fits in an int32 of seconds.
const maxServiceHours = (math.MaxInt32 - 59*60 - 59) / 3600

// DecodeServiceTime parses H:MM:SS or HH:MM:SS. Hours past 23 are allowed
// up to maxServiceHours.
func DecodeServiceTime(raw string) (ServiceTime, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 3 {
		return 0, decodeErr(ErrInvalidTime, raw)
	}
	h, m, s := parts[0], parts[1], parts[2]
	if h == "" || !allDigits(h) || len(m) != 2 || !allDigits(m) || len(s) != 2 || !allDigits(s) {
		return 0, decodeErr(ErrInvalidTime, raw)
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours > maxServiceHours {
		return 0, decodeErr(ErrInvalidTime, raw)
	}
	minutes, _ := strconv.Atoi(m)
	seconds, _ := strconv.Atoi(s)
	if minutes > 59 || seconds > 59 {
		return 0, decodeErr(ErrInvalidTime, raw)
	}
	return ServiceTime(hours*3600 + minutes*60 + seconds), nil
}

func (t ServiceTime) Hours() int   { return int(t) / 3600 }
func (t ServiceTime) Minutes() int { return int(t) / 60 % 60 }
func (t ServiceTime) Seconds() int { return int(t) % 60 }

// Duration returns the offset from midnight of the service day.
func (t ServiceTime) Duration() time.Duration {
	return time.Duration(t) * time.Second
}

func (t ServiceTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hours(), t.Minutes(), t.Seconds())
}

func (t ServiceTime) MarshalCSV() (string, error) {
	return t.String(), nil
}

func (t ServiceTime) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Color is a 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

var (
	White = Color{R: 0xFF, G: 0xFF, B: 0xFF}
	Black = Color{}
)

// DecodeColor parses six hex digits, in either case, without a leading '#'.
func DecodeColor(raw string) (Color, error) {
	s := strings.TrimSpace(raw)
	if len(s) != 6 {
		return Color{}, decodeErr(ErrInvalidColor, raw)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, decodeErr(ErrInvalidColor, raw)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

func (c Color) String() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

func (c Color) MarshalCSV() (string, error) {
	return c.String(), nil
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Latitude is a WGS84 latitude in degrees.
type Latitude float64

// Longitude is a WGS84 longitude in degrees.
type Longitude float64

func DecodeLatitude(raw string) (Latitude, error) {
	v, err := decodeBounded(raw, 90)
	return Latitude(v), err
}

func DecodeLongitude(raw string) (Longitude, error) {
	v, err := decodeBounded(raw, 180)
	return Longitude(v), err
}

func decodeBounded(raw string, limit float64) (float64, error) {
	v, err := decodeFloat(raw)
	if err != nil {
		return 0, err
	}
	if v < -limit || v > limit {
		return 0, decodeErr(ErrOutOfRange, raw)
	}
	return v, nil
}

// decodeFloat accepts plain decimal text only. Hex floats, digit separators
// and the infinities strconv understands are rejected.
func decodeFloat(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.ContainsAny(trimmed, "xXpP_") {
		return 0, decodeErr(ErrNotANumber, raw)
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, decodeErr(ErrNotANumber, raw)
	}
	return v, nil
}

func decodeInt(raw string, bits int) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, bits)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, decodeErr(ErrOutOfRange, raw)
		}
		return 0, decodeErr(ErrNotANumber, raw)
	}
	return v, nil
}

// Flag is a GTFS boolean, encoded as "0" or "1".
type Flag bool

// DecodeFlag accepts only the digits 0 and 1.
func DecodeFlag(raw string) (Flag, error) {
	switch strings.TrimSpace(raw) {
	case "0":
		return false, nil
	case "1":
		return true, nil
	}
	return false, decodeErr(ErrInvalidBoolean, raw)
}

func (f Flag) MarshalCSV() (string, error) {
	if f {
		return "1", nil
	}
	return "0", nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (l Latitude) MarshalCSV() (string, error) {
	return strconv.FormatFloat(float64(l), 'f', -1, 64), nil
}

func (l Longitude) MarshalCSV() (string, error) {
	return strconv.FormatFloat(float64(l), 'f', -1, 64), nil
}
