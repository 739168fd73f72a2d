package dateinput

import (
	"time"

	"github.com/misteinb/fluent-controls-go/internal/config"
)

// Format selects the segment order of the textual date buffer.
// It is fixed for the lifetime of a Machine.
type Format int

const (
	// MonthDayYear renders MM/DD/YYYY.
	MonthDayYear Format = iota
	// DayMonthYear renders DD/MM/YYYY.
	DayMonthYear
	// YearMonthDay renders YYYY/MM/DD.
	YearMonthDay
)

// segmentKind identifies one of the three numeric fields of a buffer.
type segmentKind int

const (
	segYear segmentKind = iota
	segMonth
	segDay
)

// ParseFormat maps a preference value ("MDY", "DMY", "YMD") to a Format.
// Unknown values fall back to MonthDayYear.
func ParseFormat(s string) Format {
	switch s {
	case "DMY":
		return DayMonthYear
	case "YMD":
		return YearMonthDay
	default:
		return MonthDayYear
	}
}

func (f Format) String() string {
	switch f {
	case DayMonthYear:
		return "DMY"
	case YearMonthDay:
		return "YMD"
	default:
		return "MDY"
	}
}

// order returns the segment kinds in buffer position order.
func (f Format) order() [3]segmentKind {
	switch f {
	case DayMonthYear:
		return [3]segmentKind{segDay, segMonth, segYear}
	case YearMonthDay:
		return [3]segmentKind{segYear, segMonth, segDay}
	default:
		return [3]segmentKind{segMonth, segDay, segYear}
	}
}

// layout returns the time package layout matching the segment order.
func (f Format) layout() string {
	switch f {
	case DayMonthYear:
		return config.LayoutDMY
	case YearMonthDay:
		return config.LayoutYMD
	default:
		return config.LayoutMDY
	}
}

// layoutLenient is the same order without zero padding, accepted by the
// free-form parser so pastes like "3/4/2024" still resolve.
func (f Format) layoutLenient() string {
	switch f {
	case DayMonthYear:
		return "2/1/2006"
	case YearMonthDay:
		return "2006/1/2"
	default:
		return "1/2/2006"
	}
}

// FormatDate renders t as a full buffer in this format.
// Years below 1000 are zero-padded to four digits so the rendered buffer
// round-trips through the full-string parser at the fixed width.
func (f Format) FormatDate(t time.Time) string {
	return t.Format(f.layout())
}
