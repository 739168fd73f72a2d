package dateinput

import (
	"strconv"
	"strings"
	"time"

	"github.com/misteinb/fluent-controls-go/internal/config"
)

// missingSegment is the sentinel substituted for absent or non-numeric
// segments. It is guaranteed to fail every range check.
const missingSegment = -1

// freeLayouts are tried in order by the free-form parser, after the
// configured segment layout itself. Mirrors the generic date strings a host
// is likely to paste.
var freeLayouts = []string{
	config.DateFormatFullDash,
	config.DateFormatFullBasic,
	config.DateFormatRFC3339,
	config.DateFormatFullT,
	config.DateFormatLongMonth,
	config.DateFormatShortMon,
	config.DateFormatLongEU,
}

// parseBuffer decides whether buf denotes a calendar-valid date in the
// machine's format. The hour/minute/second of ref are carried into the
// result; a zero ref contributes midnight.
//
// The day is deliberately not cross-checked against the month before the
// round trip below: time.Date normalizes overflow (February 30 becomes
// March 1 or 2), and comparing the normalized fields back against the
// inputs is the authoritative rejection of such combinations.
func (m *Machine) parseBuffer(buf string, ref time.Time) (time.Time, bool) {
	parts := strings.Split(buf, string(config.SegmentSeparator))
	if len(parts) > 3 {
		return time.Time{}, false
	}

	nums := [3]int{missingSegment, missingSegment, missingSegment}
	for i := 0; i < len(parts); i++ {
		if parts[i] == "" {
			continue
		}
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			continue
		}
		nums[i] = n
	}

	var year, month, day int
	for i, kind := range m.format.order() {
		switch kind {
		case segYear:
			year = nums[i]
		case segMonth:
			month = nums[i]
		case segDay:
			day = nums[i]
		}
	}

	if year < 1 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	h, min, sec := 0, 0, 0
	if !ref.IsZero() {
		h, min, sec = ref.Clock()
	}

	t := time.Date(year, time.Month(month), day, h, min, sec, 0, m.loc)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// parseFree attempts a generic date-string parse, the path used for string
// seeds, pastes, and over-long buffers. The time of day comes from the
// parsed value when the layout carries one, otherwise from ref.
func (m *Machine) parseFree(s string, ref time.Time) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	layouts := append([]string{m.format.layout(), m.format.layoutLenient()}, freeLayouts...)
	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, s, m.loc)
		if err != nil {
			continue
		}
		if t.Year() < 1 {
			continue
		}
		h, min, sec := t.Clock()
		if h == 0 && min == 0 && sec == 0 && !ref.IsZero() {
			h, min, sec = ref.Clock()
		}
		return time.Date(t.Year(), t.Month(), t.Day(), h, min, sec, 0, m.loc), true
	}
	return time.Time{}, false
}
