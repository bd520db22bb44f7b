package smsdev

import (
	"time"

	"github.com/oggyb/smsdev/internal/dateformat"
)

// Inbox status values understood by the gateway.
const (
	StatusAll    = 1
	StatusUnread = 0
)

// Filter holds the search criteria for one inbox query. It is a value:
// every method returns a modified copy and leaves the receiver untouched.
//
// Dates given to DateFrom/DateTo are read with the filter's layout in its
// location, then stored as the gateway's d/m/Y day in America/Sao_Paulo.
// Input that does not match the layout is ignored.
//
// The zero value matches every message.
type Filter struct {
	unread   bool
	id       int
	dateFrom string
	dateTo   string

	layout string
	loc    *time.Location
}

// NewFilter returns a filter matching every message. layout and loc are
// used to read the dates passed to DateFrom and DateTo.
func NewFilter(layout string, loc *time.Location) Filter {
	if layout == "" {
		layout = DefaultDateFormat
	}
	if loc == nil {
		loc = time.Local
	}
	return Filter{layout: layout, loc: loc}
}

// In rebinds the layout and location used for subsequent date calls.
func (f Filter) In(layout string, loc *time.Location) Filter {
	if layout != "" {
		f.layout = layout
	}
	if loc != nil {
		f.loc = loc
	}
	return f
}

// Unread restricts the query to unread messages.
func (f Filter) Unread() Filter {
	f.unread = true
	return f
}

// ByID restricts the query to a single message id. Non-positive ids are ignored.
func (f Filter) ByID(id int) Filter {
	if id > 0 {
		f.id = id
	}
	return f
}

// DateFrom sets the lower date bound.
func (f Filter) DateFrom(date string) Filter {
	if d, ok := f.apiDate(date); ok {
		f.dateFrom = d
	}
	return f
}

// DateTo sets the upper date bound.
func (f Filter) DateTo(date string) Filter {
	if d, ok := f.apiDate(date); ok {
		f.dateTo = d
	}
	return f
}

// DateBetween sets both bounds.
func (f Filter) DateBetween(from, to string) Filter {
	return f.DateFrom(from).DateTo(to)
}

// Query renders the filter as gateway parameters. "status" is always set.
func (f Filter) Query() map[string]any {
	status := StatusAll
	if f.unread {
		status = StatusUnread
	}

	q := map[string]any{"status": status}
	if f.id > 0 {
		q["id"] = f.id
	}
	if f.dateFrom != "" {
		q["date_from"] = f.dateFrom
	}
	if f.dateTo != "" {
		q["date_to"] = f.dateTo
	}
	return q
}

func (f Filter) apiDate(date string) (string, bool) {
	layout, loc := f.layout, f.loc
	if layout == "" {
		layout = DefaultDateFormat
	}
	if loc == nil {
		loc = time.Local
	}
	out, err := dateformat.Convert(layout, date, loc, apiLocation, dateformat.APIDate)
	if err != nil {
		return "", false
	}
	return out, true
}
