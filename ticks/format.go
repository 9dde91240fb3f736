package ticks

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Format is a compiled printf-style timestamp pattern.
//
//	%y    year (2008)         %2y   two-digit year (08)
//	%M    month (01)          %N    month name (January), %3N → Jan
//	%d    day of month (05)   %j    day of year (036)
//	%H    hour, 24h (04)      %m    minute (07)
//	%s    second, floor (09)  %S    second with fraction, %3S → 09.125
//	%E    weekday (Tuesday)   %3E   → Tue
//	%z    zone abbreviation   %%    literal percent
//
// Numeric fields are zero-padded; flag '>' pads with spaces on the left,
// '<' with spaces on the right, '!' disables padding. Text fields accept
// '^' for upper case and '/' for lower case. The precision of the
// rightmost %S field decides rounding, so every field may roll over with
// it (23:59:59.999 formats as the next day with %0S).
type Format struct {
	pattern   string
	writers   []timeWriter
	precision int // of the rightmost %S, -1 if none
}

type timeWriter func(*strings.Builder, time.Time)

type padding int

const (
	padZero padding = iota
	padLeft
	padRight
	padNone
)

type fieldSpec struct {
	digits int // -1 if unset
	pad    padding
	upper  bool
	lower  bool
}

// ParseFormat compiles a timestamp pattern.
func ParseFormat(pattern string) (*Format, error) {
	f := &Format{pattern: pattern, precision: -1}
	var literal strings.Builder
	flush := func() {
		if literal.Len() > 0 {
			f.writers = append(f.writers, writeLiteral(literal.String()))
			literal.Reset()
		}
	}
	for i := 0; i < len(pattern); {
		c := pattern[i]
		i++
		if c != '%' {
			literal.WriteByte(c)
			continue
		}
		if i < len(pattern) && pattern[i] == '%' {
			literal.WriteByte('%')
			i++
			continue
		}
		spec := fieldSpec{digits: -1}
		var code byte
		for i < len(pattern) {
			c2 := pattern[i]
			i++
			if unicode.IsLetter(rune(c2)) {
				code = c2
				break
			}
			switch {
			case c2 >= '0' && c2 <= '9':
				if spec.digits < 0 {
					spec.digits = 0
				}
				spec.digits = spec.digits*10 + int(c2-'0')
			case c2 == '>':
				spec.pad = padLeft
			case c2 == '<':
				spec.pad = padRight
			case c2 == '!':
				spec.pad = padNone
			case c2 == '^':
				spec.upper = true
			case c2 == '/':
				spec.lower = true
			default:
				return nil, fmt.Errorf("%w: flag %q in %q", ErrInvalidFormat, c2, pattern)
			}
		}
		if code == 0 {
			return nil, fmt.Errorf("%w: unclosed format specifier in %q", ErrInvalidFormat, pattern)
		}
		w, err := newField(code, spec)
		if err != nil {
			return nil, fmt.Errorf("%w in %q", err, pattern)
		}
		if code == 'S' {
			f.precision = spec.digits
		}
		flush()
		f.writers = append(f.writers, w)
	}
	flush()
	return f, nil
}

// MustFormat is like ParseFormat, but panics on malformed patterns.
func MustFormat(pattern string) *Format {
	f, err := ParseFormat(pattern)
	if err != nil {
		panic(err)
	}
	return f
}

// Format formats t in t's location.
func (f *Format) Format(t time.Time) string {
	if f.precision >= 0 {
		t = t.Round(time.Duration(math.Pow(10, float64(9-min(f.precision, 9)))))
	}
	var b strings.Builder
	for _, w := range f.writers {
		w(&b, t)
	}
	return b.String()
}

// Pattern returns the source pattern.
func (f *Format) Pattern() string {
	return f.pattern
}

func (f *Format) String() string {
	return f.pattern
}

// === Fields ================================================================

func newField(code byte, spec fieldSpec) (timeWriter, error) {
	switch code {
	case 'y':
		if spec.digits == 2 {
			return numField(spec, 2, func(t time.Time) int { return t.Year() % 100 }), nil
		}
		return numField(spec, 4, func(t time.Time) int { return t.Year() }), nil
	case 'M':
		return numField(spec, 2, func(t time.Time) int { return int(t.Month()) }), nil
	case 'N':
		return textField(spec, func(t time.Time) string { return t.Month().String() }), nil
	case 'd':
		return numField(spec, 2, func(t time.Time) int { return t.Day() }), nil
	case 'j':
		return numField(spec, 3, func(t time.Time) int { return t.YearDay() }), nil
	case 'H':
		return numField(spec, 2, func(t time.Time) int { return t.Hour() }), nil
	case 'm':
		return numField(spec, 2, func(t time.Time) int { return t.Minute() }), nil
	case 's':
		return numField(spec, 2, func(t time.Time) int { return t.Second() }), nil
	case 'S':
		return secondsField(spec), nil
	case 'E':
		return textField(spec, func(t time.Time) string { return t.Weekday().String() }), nil
	case 'z':
		return textField(fieldSpec{digits: -1, upper: spec.upper, lower: spec.lower},
			func(t time.Time) string { name, _ := t.Zone(); return name }), nil
	}
	return nil, fmt.Errorf("%w: unrecognized field code %q", ErrInvalidFormat, code)
}

func writeLiteral(s string) timeWriter {
	return func(w *strings.Builder, _ time.Time) {
		w.WriteString(s)
	}
}

func numField(spec fieldSpec, width int, get func(time.Time) int) timeWriter {
	pad := spec.pad
	return func(w *strings.Builder, t time.Time) {
		writePadded(w, strconv.Itoa(get(t)), width, pad)
	}
}

func writePadded(w *strings.Builder, s string, width int, pad padding) {
	n := width - len(s)
	switch {
	case n <= 0 || pad == padNone:
		w.WriteString(s)
	case pad == padZero:
		w.WriteString(strings.Repeat("0", n))
		w.WriteString(s)
	case pad == padLeft:
		w.WriteString(strings.Repeat(" ", n))
		w.WriteString(s)
	case pad == padRight:
		w.WriteString(s)
		w.WriteString(strings.Repeat(" ", n))
	}
}

func textField(spec fieldSpec, get func(time.Time) string) timeWriter {
	return func(w *strings.Builder, t time.Time) {
		s := get(t)
		if spec.digits > 0 && spec.digits < len(s) {
			s = s[:spec.digits]
		}
		switch {
		case spec.upper:
			s = strings.ToUpper(s)
		case spec.lower:
			s = strings.ToLower(s)
		}
		w.WriteString(s)
	}
}

// secondsField writes seconds with spec.digits decimal places. Without a
// precision, all significant decimals are written.
func secondsField(spec fieldSpec) timeWriter {
	return func(w *strings.Builder, t time.Time) {
		sec := float64(t.Second()) + float64(t.Nanosecond())/1e9
		s := strconv.FormatFloat(sec, 'f', spec.digits, 64)
		intLen := strings.IndexByte(s, '.')
		if intLen < 0 {
			intLen = len(s)
		}
		if intLen < 2 && spec.pad != padNone {
			writePadded(w, s[:intLen], 2, spec.pad)
			w.WriteString(s[intLen:])
			return
		}
		w.WriteString(s)
	}
}
