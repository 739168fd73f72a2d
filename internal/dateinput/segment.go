package dateinput

import (
	"strings"

	"github.com/misteinb/fluent-controls-go/internal/config"
)

// onTrack reports whether buf is a well-formed prefix of a fully typed
// date: digits and separators only, at most three segments, each month or
// day segment within range once two digits long, the year segment no wider
// than four digits. An empty buffer is on track. Buffers that fail this are
// treated as free text by the edit classifier: no assist, no revert at the
// length cap.
func (m *Machine) onTrack(buf string) bool {
	if len(buf) > config.MaxBufferLen {
		return false
	}
	parts := strings.Split(buf, string(config.SegmentSeparator))
	if len(parts) > 3 {
		return false
	}
	order := m.format.order()

	for i, p := range parts {
		completed := i < len(parts)-1
		if completed && p == "" {
			return false
		}
		for j := 0; j < len(p); j++ {
			if p[j] < '0' || p[j] > '9' {
				return false
			}
		}

		if order[i] == segYear {
			if len(p) > config.YearDigits {
				return false
			}
			continue
		}

		maxValue := 12
		if order[i] == segDay {
			maxValue = 31
		}
		switch {
		case len(p) > config.SegmentDigits:
			return false
		case len(p) == config.SegmentDigits:
			value := int(p[0]-'0')*10 + int(p[1]-'0')
			if value < 1 || value > maxValue {
				return false
			}
		case len(p) == 1 && completed:
			if p[0] == '0' {
				return false
			}
		}
	}
	return true
}

// assistTyping applies the incremental typing rules for a single character
// appended at the end of prev, returning the resulting buffer.
//
// Month and day segments get the assist: a first digit too large to start a
// two-digit value in range is promoted to "0X" with the separator appended,
// and a second digit that would push the segment out of range is rejected
// (the lone first digit is then shown zero-padded). The year segment is only
// capped in length.
func (m *Machine) assistTyping(prev string, ch byte) string {
	if ch < '0' || ch > '9' {
		// Separators and anything else the widget let through are taken
		// literally; the full-string parser judges the result.
		return prev + string(ch)
	}

	segIdx := strings.Count(prev, string(config.SegmentSeparator))
	if segIdx > 2 {
		return prev
	}
	kind := m.format.order()[segIdx]

	segStart := 0
	if i := strings.LastIndexByte(prev, config.SegmentSeparator); i >= 0 {
		segStart = i + 1
	}
	cur := prev[segStart:]
	digit := int(ch - '0')

	if kind == segYear {
		if len(cur) >= config.YearDigits {
			return prev
		}
		return prev + string(ch)
	}

	maxFirst, maxValue := 1, 12 // month
	if kind == segDay {
		maxFirst, maxValue = 3, 31
	}

	// No separator after the final segment (the day position in YMD).
	var sealed string
	if segIdx < 2 {
		sealed = string(config.SegmentSeparator)
	}

	switch len(cur) {
	case 0:
		if digit > maxFirst {
			return prev + "0" + string(ch) + sealed
		}
		return prev + string(ch)
	case 1:
		value := int(cur[0]-'0')*10 + digit
		if value >= 1 && value <= maxValue {
			return prev + string(ch) + sealed
		}
		if cur[0] != '0' {
			// Keep the first digit but promote it to its two-digit form.
			return prev[:segStart] + "0" + cur
		}
		return prev
	default:
		// Segment already holds two digits without a trailing separator
		// (reachable after a rejected second digit); the separator has to
		// be typed explicitly.
		return prev
	}
}
