// Package dateformat converts between time.Time and the PHP date() style
// layouts ("Y-m-d H:i:s", "U", "d/m/Y") used to talk to the SmsDev gateway.
//
// Every function takes the location explicitly; nothing here reads the
// process-wide local timezone.
package dateformat

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Common layouts.
const (
	// Unix renders and parses epoch seconds.
	Unix = "U"
	// APIDate is the day filter format accepted by the gateway.
	APIDate = "d/m/Y"
	// APIDateTime is the timestamp format returned by the gateway.
	APIDateTime = "d/m/Y H:i:s"
)

var (
	// ErrMismatch is returned when the value does not follow the layout.
	ErrMismatch = errors.New("dateformat: value does not match layout")
	// ErrRange is returned when a parsed field is outside its valid range.
	ErrRange = errors.New("dateformat: field out of range")
)

// Parsed is the outcome of Parse.
type Parsed struct {
	Time time.Time

	// Instant is true when the layout pinned a moment in time (a time of day
	// or epoch seconds). A date-only layout yields a calendar day, which
	// callers should not shift between timezones.
	Instant bool
}

// Format renders t with a PHP date() layout. Unknown letters are copied
// verbatim; a backslash escapes the next character.
func Format(t time.Time, layout string) string {
	var b strings.Builder

	for i := 0; i < len(layout); i++ {
		c := layout[i]

		if c == '\\' {
			if i+1 < len(layout) {
				i++
				b.WriteByte(layout[i])
			}
			continue
		}

		switch c {
		case 'd':
			fmt.Fprintf(&b, "%02d", t.Day())
		case 'D':
			b.WriteString(t.Weekday().String()[:3])
		case 'j':
			b.WriteString(strconv.Itoa(t.Day()))
		case 'l':
			b.WriteString(t.Weekday().String())
		case 'N':
			wd := int(t.Weekday())
			if wd == 0 {
				wd = 7
			}
			b.WriteString(strconv.Itoa(wd))
		case 'w':
			b.WriteString(strconv.Itoa(int(t.Weekday())))
		case 'z':
			b.WriteString(strconv.Itoa(t.YearDay() - 1))
		case 'F':
			b.WriteString(t.Month().String())
		case 'm':
			fmt.Fprintf(&b, "%02d", int(t.Month()))
		case 'M':
			b.WriteString(t.Month().String()[:3])
		case 'n':
			b.WriteString(strconv.Itoa(int(t.Month())))
		case 't':
			b.WriteString(strconv.Itoa(daysIn(t.Month(), t.Year())))
		case 'L':
			if isLeap(t.Year()) {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		case 'Y':
			fmt.Fprintf(&b, "%04d", t.Year())
		case 'y':
			fmt.Fprintf(&b, "%02d", t.Year()%100)
		case 'a':
			b.WriteString(strings.ToLower(meridiem(t.Hour())))
		case 'A':
			b.WriteString(meridiem(t.Hour()))
		case 'g':
			b.WriteString(strconv.Itoa(hour12(t.Hour())))
		case 'G':
			b.WriteString(strconv.Itoa(t.Hour()))
		case 'h':
			fmt.Fprintf(&b, "%02d", hour12(t.Hour()))
		case 'H':
			fmt.Fprintf(&b, "%02d", t.Hour())
		case 'i':
			fmt.Fprintf(&b, "%02d", t.Minute())
		case 's':
			fmt.Fprintf(&b, "%02d", t.Second())
		case 'u':
			fmt.Fprintf(&b, "%06d", t.Nanosecond()/1e3)
		case 'v':
			fmt.Fprintf(&b, "%03d", t.Nanosecond()/1e6)
		case 'e':
			b.WriteString(t.Location().String())
		case 'T':
			name, _ := t.Zone()
			b.WriteString(name)
		case 'P':
			b.WriteString(t.Format("-07:00"))
		case 'O':
			b.WriteString(t.Format("-0700"))
		case 'U':
			b.WriteString(strconv.FormatInt(t.Unix(), 10))
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

// Parse reads value according to layout, interpreting wall-clock fields in
// loc. Missing date fields default to the current date in loc and missing
// clock fields default to midnight.
func Parse(layout, value string, loc *time.Location) (Parsed, error) {
	if loc == nil {
		loc = time.UTC
	}

	now := time.Now().In(loc)
	year, month, day := now.Year(), int(now.Month()), now.Day()
	hour, minute, second := 0, 0, 0
	pm, hasMeridiem := false, false

	var (
		unix    int64
		isUnix  bool
		instant bool
	)

	p := &scanner{value: value}

	for i := 0; i < len(layout); i++ {
		c := layout[i]

		if c == '\\' {
			if i+1 < len(layout) {
				i++
				if err := p.literal(layout[i]); err != nil {
					return Parsed{}, err
				}
			}
			continue
		}

		var err error
		switch c {
		case 'd', 'j':
			day, err = p.number(1, 2)
		case 'm', 'n':
			month, err = p.number(1, 2)
		case 'M':
			month, err = p.name(shortMonths)
		case 'F':
			month, err = p.name(longMonths)
		case 'D':
			_, err = p.name(shortDays)
		case 'l':
			_, err = p.name(longDays)
		case 'Y':
			year, err = p.number(1, 4)
		case 'y':
			year, err = p.number(2, 2)
			year += 1900
			if year < 1970 {
				year += 100
			}
		case 'H', 'G', 'h', 'g':
			hour, err = p.number(1, 2)
			instant = true
		case 'i':
			minute, err = p.number(2, 2)
			instant = true
		case 's':
			second, err = p.number(2, 2)
			instant = true
		case 'A', 'a':
			pm, err = p.meridiem()
			hasMeridiem = true
		case 'U':
			unix, err = p.signed()
			isUnix = true
			instant = true
		default:
			err = p.literal(c)
		}

		if err != nil {
			return Parsed{}, err
		}
	}

	if p.pos != len(p.value) {
		return Parsed{}, fmt.Errorf("%w: trailing data %q", ErrMismatch, p.value[p.pos:])
	}

	if isUnix {
		return Parsed{Time: time.Unix(unix, 0).In(loc), Instant: true}, nil
	}

	if hasMeridiem {
		if hour < 1 || hour > 12 {
			return Parsed{}, fmt.Errorf("%w: hour %d", ErrRange, hour)
		}
		hour %= 12
		if pm {
			hour += 12
		}
	}

	if month < 1 || month > 12 {
		return Parsed{}, fmt.Errorf("%w: month %d", ErrRange, month)
	}
	if day < 1 || day > daysIn(time.Month(month), year) {
		return Parsed{}, fmt.Errorf("%w: day %d", ErrRange, day)
	}
	if hour > 23 || minute > 59 || second > 59 {
		return Parsed{}, fmt.Errorf("%w: clock %02d:%02d:%02d", ErrRange, hour, minute, second)
	}

	if !instant {
		return Parsed{Time: startOfDay(year, time.Month(month), day, loc)}, nil
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, loc)
	return Parsed{Time: t, Instant: true}, nil
}

// Convert re-expresses a value parsed with layout in from as a value in the
// to location rendered with outLayout. Calendar days (date-only layouts) are
// carried over unchanged.
func Convert(layout, value string, from, to *time.Location, outLayout string) (string, error) {
	parsed, err := Parse(layout, value, from)
	if err != nil {
		return "", err
	}

	t := parsed.Time
	if parsed.Instant {
		t = t.In(to)
	} else {
		t = startOfDay(t.Year(), t.Month(), t.Day(), to)
	}

	return Format(t, outLayout), nil
}

// startOfDay returns the first instant of the calendar day in loc. When a DST
// change skips local midnight, time.Date lands on the previous day, so the
// result is walked forward to the end of the gap.
func startOfDay(year int, month time.Month, day int, loc *time.Location) time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	for t.Day() != day {
		t = t.Add(time.Hour)
	}
	return t
}

func meridiem(hour int) string {
	if hour < 12 {
		return "AM"
	}
	return "PM"
}

func hour12(hour int) int {
	h := hour % 12
	if h == 0 {
		return 12
	}
	return h
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
