// Package dateformat implements the date-pattern mini-language used for the
// widget's text field and zoned formatting.
//
// Tokens are runs of the same letter; everything else is literal. Single
// quotes protect literal text ('at'), and '' inside a quoted section is a
// literal quote.
//
//	yyyy yy y     year (4-digit, 2-digit, unpadded)
//	MMMM MMM MM M month (name, abbreviation, 2-digit, unpadded)
//	dd d          day of month
//	EEEE EEE E    weekday (name, abbreviation)
//	HH H          hour 0-23
//	hh h          hour 1-12 (combine with a)
//	mm m          minute
//	ss s          second
//	a             AM/PM
//
// Unrecognized letter runs format verbatim, so plain text like "on" can
// appear unquoted as long as it contains no token letters.
package dateformat

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// segment is one parsed piece of a pattern: either a token (run of the same
// letter, lit=false) or literal text.
type segment struct {
	text string
	lit  bool
}

// splitPattern breaks a pattern into token and literal segments.
// An unterminated quote is treated as running to the end of the pattern.
func splitPattern(pattern string) []segment {
	var segs []segment
	runes := []rune(pattern)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case r == '\'':
			// Quoted literal; '' is an escaped quote.
			var b strings.Builder
			i++
			for i < len(runes) {
				if runes[i] == '\'' {
					if i+1 < len(runes) && runes[i+1] == '\'' {
						b.WriteRune('\'')
						i += 2
						continue
					}
					i++
					break
				}
				b.WriteRune(runes[i])
				i++
			}
			if b.Len() == 0 {
				// '' outside a quoted run is a single quote.
				segs = append(segs, segment{text: "'", lit: true})
			} else {
				segs = append(segs, segment{text: b.String(), lit: true})
			}
		case isPatternLetter(r):
			j := i
			for j < len(runes) && runes[j] == r {
				j++
			}
			segs = append(segs, segment{text: string(runes[i:j])})
			i = j
		default:
			j := i
			for j < len(runes) && !isPatternLetter(runes[j]) && runes[j] != '\'' {
				j++
			}
			segs = append(segs, segment{text: string(runes[i:j]), lit: true})
			i = j
		}
	}
	return segs
}

func isPatternLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// Format renders t's wall-clock fields according to pattern.
func Format(t time.Time, pattern string) string {
	var b strings.Builder
	for _, seg := range splitPattern(pattern) {
		if seg.lit {
			b.WriteString(seg.text)
			continue
		}
		b.WriteString(formatToken(t, seg.text))
	}
	return b.String()
}

func formatToken(t time.Time, tok string) string {
	switch tok {
	case "yyyy":
		return fmt.Sprintf("%04d", t.Year())
	case "yy":
		return fmt.Sprintf("%02d", t.Year()%100)
	case "y":
		return strconv.Itoa(t.Year())
	case "MMMM":
		return t.Month().String()
	case "MMM":
		return t.Month().String()[:3]
	case "MM":
		return fmt.Sprintf("%02d", int(t.Month()))
	case "M":
		return strconv.Itoa(int(t.Month()))
	case "dd":
		return fmt.Sprintf("%02d", t.Day())
	case "d":
		return strconv.Itoa(t.Day())
	case "EEEE":
		return t.Weekday().String()
	case "EEE", "E":
		return t.Weekday().String()[:3]
	case "HH":
		return fmt.Sprintf("%02d", t.Hour())
	case "H":
		return strconv.Itoa(t.Hour())
	case "hh":
		return fmt.Sprintf("%02d", hour12(t.Hour()))
	case "h":
		return strconv.Itoa(hour12(t.Hour()))
	case "mm":
		return fmt.Sprintf("%02d", t.Minute())
	case "m":
		return strconv.Itoa(t.Minute())
	case "ss":
		return fmt.Sprintf("%02d", t.Second())
	case "s":
		return strconv.Itoa(t.Second())
	case "a":
		if t.Hour() < 12 {
			return "AM"
		}
		return "PM"
	default:
		// Unknown runs pass through so patterns can carry bare words.
		return tok
	}
}

func hour12(h int) int {
	h %= 12
	if h == 0 {
		return 12
	}
	return h
}

// parseState accumulates wall-clock fields while scanning input.
type parseState struct {
	year   int
	month  int
	day    int
	hour   int
	hour12 int
	minute int
	sec    int
	pm     bool
	has12  bool
}

// Parse reads input as wall-clock text in loc according to pattern.
// Fields absent from the pattern default to year 0, January 1, midnight,
// matching the zero reference of the time package. Errors name the offending
// token; nothing here panics on malformed input.
func Parse(input, pattern string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	st := parseState{month: 1, day: 1}
	rest := input
	for _, seg := range splitPattern(pattern) {
		var err error
		if seg.lit {
			rest, err = eatLiteral(rest, seg.text)
		} else {
			rest, err = parseToken(&st, rest, seg.text)
		}
		if err != nil {
			return time.Time{}, err
		}
	}
	if strings.TrimSpace(rest) != "" {
		return time.Time{}, fmt.Errorf("dateformat: trailing input %q", rest)
	}
	if st.has12 {
		h := st.hour12 % 12
		if st.pm {
			h += 12
		}
		st.hour = h
	}
	if st.month < 1 || st.month > 12 {
		return time.Time{}, fmt.Errorf("dateformat: month %d out of range", st.month)
	}
	if st.day < 1 || st.day > daysIn(st.year, time.Month(st.month)) {
		return time.Time{}, fmt.Errorf("dateformat: day %d out of range for %d-%02d", st.day, st.year, st.month)
	}
	return time.Date(st.year, time.Month(st.month), st.day, st.hour, st.minute, st.sec, 0, loc), nil
}

func daysIn(year int, m time.Month) int {
	// Day 0 of the next month is the last day of m.
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func eatLiteral(s, lit string) (string, error) {
	if !strings.HasPrefix(s, lit) {
		return s, fmt.Errorf("dateformat: expected %q at %q", lit, s)
	}
	return s[len(lit):], nil
}

func parseToken(st *parseState, s, tok string) (string, error) {
	switch tok {
	case "yyyy":
		n, rest, err := readInt(s, 4, 4, tok)
		if err != nil {
			return s, err
		}
		st.year = n
		return rest, nil
	case "yy":
		n, rest, err := readInt(s, 2, 2, tok)
		if err != nil {
			return s, err
		}
		// Two-digit years land in 2000-2099; the text field always offers
		// a four-digit pattern when other centuries matter.
		st.year = 2000 + n
		return rest, nil
	case "y":
		n, rest, err := readInt(s, 1, 4, tok)
		if err != nil {
			return s, err
		}
		st.year = n
		return rest, nil
	case "MMMM", "MMM":
		m, rest, err := readMonthName(s, tok == "MMM")
		if err != nil {
			return s, err
		}
		st.month = m
		return rest, nil
	case "MM":
		return readIntInto(&st.month, s, 2, 2, tok)
	case "M":
		return readIntInto(&st.month, s, 1, 2, tok)
	case "dd":
		return readIntInto(&st.day, s, 2, 2, tok)
	case "d":
		return readIntInto(&st.day, s, 1, 2, tok)
	case "EEEE", "EEE", "E":
		// Weekday is display-only; consume and discard.
		rest, err := readWeekdayName(s)
		if err != nil {
			return s, err
		}
		return rest, nil
	case "HH":
		return readBoundedInt(&st.hour, s, 2, 2, tok, 23)
	case "H":
		return readBoundedInt(&st.hour, s, 1, 2, tok, 23)
	case "hh":
		st.has12 = true
		return readBoundedInt(&st.hour12, s, 2, 2, tok, 12)
	case "h":
		st.has12 = true
		return readBoundedInt(&st.hour12, s, 1, 2, tok, 12)
	case "mm":
		return readBoundedInt(&st.minute, s, 2, 2, tok, 59)
	case "m":
		return readBoundedInt(&st.minute, s, 1, 2, tok, 59)
	case "ss":
		return readBoundedInt(&st.sec, s, 2, 2, tok, 59)
	case "s":
		return readBoundedInt(&st.sec, s, 1, 2, tok, 59)
	case "a":
		up := strings.ToUpper(s)
		switch {
		case strings.HasPrefix(up, "AM"):
			st.pm = false
		case strings.HasPrefix(up, "PM"):
			st.pm = true
		default:
			return s, fmt.Errorf("dateformat: expected AM/PM at %q", s)
		}
		return s[2:], nil
	default:
		// Unknown runs were emitted verbatim by Format; require them back.
		return eatLiteral(s, tok)
	}
}

func readInt(s string, minw, maxw int, tok string) (int, string, error) {
	n := 0
	i := 0
	for i < len(s) && i < maxw && s[i] >= '0' && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		i++
	}
	if i < minw {
		return 0, s, fmt.Errorf("dateformat: expected %d digits for %q at %q", minw, tok, s)
	}
	return n, s[i:], nil
}

func readIntInto(dst *int, s string, minw, maxw int, tok string) (string, error) {
	n, rest, err := readInt(s, minw, maxw, tok)
	if err != nil {
		return s, err
	}
	*dst = n
	return rest, nil
}

func readBoundedInt(dst *int, s string, minw, maxw int, tok string, max int) (string, error) {
	n, rest, err := readInt(s, minw, maxw, tok)
	if err != nil {
		return s, err
	}
	if n > max {
		return s, fmt.Errorf("dateformat: value %d out of range for %q", n, tok)
	}
	*dst = n
	return rest, nil
}

func readMonthName(s string, abbrev bool) (int, string, error) {
	for m := time.January; m <= time.December; m++ {
		name := m.String()
		if abbrev {
			name = name[:3]
		}
		if len(s) >= len(name) && strings.EqualFold(s[:len(name)], name) {
			return int(m), s[len(name):], nil
		}
	}
	return 0, s, fmt.Errorf("dateformat: expected month name at %q", s)
}

func readWeekdayName(s string) (string, error) {
	// Try full names first so "Sunday" is not split into "Sun" + "day".
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := wd.String()
		if len(s) >= len(name) && strings.EqualFold(s[:len(name)], name) {
			return s[len(name):], nil
		}
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := wd.String()[:3]
		if len(s) >= len(name) && strings.EqualFold(s[:len(name)], name) {
			return s[len(name):], nil
		}
	}
	return s, fmt.Errorf("dateformat: expected weekday name at %q", s)
}
