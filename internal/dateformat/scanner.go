package dateformat

import (
	"fmt"
	"strconv"
	"strings"
)

var (
	shortMonths = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}
	longMonths  = []string{"january", "february", "march", "april", "may", "june", "july", "august", "september", "october", "november", "december"}
	shortDays   = []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}
	longDays    = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}
)

// scanner consumes a value left to right while Parse walks the layout.
type scanner struct {
	value string
	pos   int
}

func (s *scanner) literal(c byte) error {
	if s.pos >= len(s.value) || s.value[s.pos] != c {
		return fmt.Errorf("%w: expected %q at offset %d", ErrMismatch, c, s.pos)
	}
	s.pos++
	return nil
}

// number reads between min and max decimal digits.
func (s *scanner) number(min, max int) (int, error) {
	start := s.pos
	n := 0
	for s.pos < len(s.value) && s.pos-start < max {
		c := s.value[s.pos]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
		s.pos++
	}
	if s.pos-start < min {
		return 0, fmt.Errorf("%w: expected digits at offset %d", ErrMismatch, start)
	}
	return n, nil
}

// signed reads an optionally signed integer that fits in an int64.
func (s *scanner) signed() (int64, error) {
	start := s.pos
	if s.pos < len(s.value) && (s.value[s.pos] == '-' || s.value[s.pos] == '+') {
		s.pos++
	}

	digits := s.pos
	for s.pos < len(s.value) && s.value[s.pos] >= '0' && s.value[s.pos] <= '9' {
		s.pos++
	}
	if s.pos == digits {
		return 0, fmt.Errorf("%w: expected digits at offset %d", ErrMismatch, digits)
	}

	n, err := strconv.ParseInt(s.value[start:s.pos], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: epoch %q", ErrRange, s.value[start:s.pos])
	}
	return n, nil
}

// name matches one of names case-insensitively and returns its 1-based index.
func (s *scanner) name(names []string) (int, error) {
	rest := strings.ToLower(s.value[s.pos:])
	// Longest first so "june" is not cut short by "jun".
	best := -1
	for i, n := range names {
		if strings.HasPrefix(rest, n) && (best < 0 || len(n) > len(names[best])) {
			best = i
		}
	}
	if best < 0 {
		return 0, fmt.Errorf("%w: expected name at offset %d", ErrMismatch, s.pos)
	}
	s.pos += len(names[best])
	return best + 1, nil
}

func (s *scanner) meridiem() (bool, error) {
	if s.pos+2 > len(s.value) {
		return false, fmt.Errorf("%w: expected AM/PM at offset %d", ErrMismatch, s.pos)
	}
	switch strings.ToUpper(s.value[s.pos : s.pos+2]) {
	case "AM":
		s.pos += 2
		return false, nil
	case "PM":
		s.pos += 2
		return true, nil
	}
	return false, fmt.Errorf("%w: expected AM/PM at offset %d", ErrMismatch, s.pos)
}
