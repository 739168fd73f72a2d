package dateinput

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestParseBuffer_RangeAndRoundTrip covers the bound checks and the
// calendar round-trip validation. February 30 passes the naive day bound
// (1-31) and is only caught by the round trip; that sequencing is the
// authoritative check and must stay.
func TestParseBuffer_RangeAndRoundTrip(t *testing.T) {
	m := newTestMachine(MonthDayYear)

	tests := []struct {
		name  string
		buf   string
		valid bool
	}{
		{"Valid_standard", "04/30/2024", true},
		{"Feb30_overflows", "02/30/2024", false},
		{"Feb29_leap", "02/29/2024", true},
		{"Feb29_non_leap", "02/29/2023", false},
		{"Apr31_overflows", "04/31/2024", false},
		{"Month_zero", "00/15/2024", false},
		{"Month_13", "13/15/2024", false},
		{"Day_zero", "04/00/2024", false},
		{"Day_32", "04/32/2024", false},
		{"Year_zero", "04/30/0000", false},
		{"Year_one", "04/30/0001", true},
		{"Missing_day", "04//2024", false},
		{"Two_segments", "04/30", false},
		{"Four_segments", "04/30/2024/1", false},
		{"Non_numeric", "ab/cd/efgh", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := m.parseBuffer(tt.buf, testNow)
			assert.Equal(t, tt.valid, ok)
		})
	}
}

// TestParseBuffer_FormatOrder checks segment mapping per format.
func TestParseBuffer_FormatOrder(t *testing.T) {
	tests := []struct {
		format Format
		buf    string
	}{
		{MonthDayYear, "03/28/2024"},
		{DayMonthYear, "28/03/2024"},
		{YearMonthDay, "2024/03/28"},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			m := newTestMachine(tt.format)
			d, ok := m.parseBuffer(tt.buf, time.Time{})
			assert.True(t, ok)
			assert.Equal(t, 2024, d.Year())
			assert.Equal(t, time.March, d.Month())
			assert.Equal(t, 28, d.Day())
		})
	}
}

// TestParseBuffer_TimeCarryOver verifies the reference date contributes
// hour/minute/second, with midnight for a zero reference.
func TestParseBuffer_TimeCarryOver(t *testing.T) {
	m := newTestMachine(MonthDayYear)

	d, ok := m.parseBuffer("04/30/2024", testNow)
	assert.True(t, ok)
	assert.Equal(t, 10, d.Hour())
	assert.Equal(t, 30, d.Minute())

	d, ok = m.parseBuffer("04/30/2024", time.Time{})
	assert.True(t, ok)
	assert.Equal(t, 0, d.Hour())
}

// TestParseBuffer_TwoDigitYear pins the literal-year rule: year 45 stays
// 45, with no century assumption.
func TestParseBuffer_TwoDigitYear(t *testing.T) {
	m := newTestMachine(MonthDayYear)
	d, ok := m.parseBuffer("02/03/0045", time.Time{})
	assert.True(t, ok)
	assert.Equal(t, 45, d.Year())
}

// TestParseRoundTrip is the reformat/reparse identity: every accepted
// buffer formats to a buffer that parses back to the same calendar date.
func TestParseRoundTrip(t *testing.T) {
	buffers := []string{
		"01/01/0001",
		"02/29/2024",
		"12/31/1999",
		"04/30/2024",
		"02/03/0045",
		"07/04/1776",
	}

	for _, f := range []Format{MonthDayYear, DayMonthYear, YearMonthDay} {
		m := newTestMachine(MonthDayYear)
		for _, buf := range buffers {
			d, ok := m.parseBuffer(buf, testNow)
			if !ok {
				t.Fatalf("parseBuffer(%q) unexpectedly invalid", buf)
			}
			other := newTestMachine(f)
			d2, ok := other.parseBuffer(f.FormatDate(d), testNow)
			if !ok {
				t.Fatalf("reformatted %q did not reparse in %s", buf, f)
			}
			if d.Year() != d2.Year() || d.Month() != d2.Month() || d.Day() != d2.Day() {
				t.Errorf("round trip mismatch for %q in %s: %v vs %v", buf, f, d, d2)
			}
		}
	}
}

// TestParseFree covers the generic parse path used by seeds and pastes.
func TestParseFree(t *testing.T) {
	m := newTestMachine(MonthDayYear)

	tests := []struct {
		name  string
		input string
		valid bool
		year  int
		month time.Month
		day   int
	}{
		{"ISO_dash", "2024-03-03", true, 2024, time.March, 3},
		{"ISO_basic", "20240303", true, 2024, time.March, 3},
		{"Long_month", "March 3, 2024", true, 2024, time.March, 3},
		{"Short_month", "Mar 3, 2024", true, 2024, time.March, 3},
		{"EU_long", "3 March 2024", true, 2024, time.March, 3},
		{"Segment_layout", "03/03/2024", true, 2024, time.March, 3},
		{"Lenient_segments", "3/3/2024", true, 2024, time.March, 3},
		{"Surrounding_space", "  2024-03-03  ", true, 2024, time.March, 3},
		{"Calendar_invalid", "2024-02-30", false, 0, 0, 0},
		{"Garbage", "not a date", false, 0, 0, 0},
		{"Empty", "", false, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := m.parseFree(tt.input, testNow)
			assert.Equal(t, tt.valid, ok)
			if tt.valid {
				assert.Equal(t, tt.year, d.Year())
				assert.Equal(t, tt.month, d.Month())
				assert.Equal(t, tt.day, d.Day())
			}
		})
	}
}
