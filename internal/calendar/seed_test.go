package calendar_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/misteinb/fluent-controls-go/internal/calendar"
	"github.com/misteinb/fluent-controls-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseSeedValue covers the BDAY formats encountered in real vCard
// exports, including year-less truncated forms.
func TestParseSeedValue(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantYear  int
		wantMonth time.Month
		wantDay   int
		yearKnown bool
		wantErr   bool
	}{
		{"FullDash", "1990-05-21", 1990, time.May, 21, true, false},
		{"FullBasic", "19900521", 1990, time.May, 21, true, false},
		{"RFC3339", "1990-05-21T00:00:00Z", 1990, time.May, 21, true, false},
		{"NoYearDash", "--05-21", config.DefaultLeapYear, time.May, 21, false, false},
		{"NoYearBasic", "--0521", config.DefaultLeapYear, time.May, 21, false, false},
		{"NoYearLeapDay", "--02-29", config.DefaultLeapYear, time.February, 29, false, false},
		{"Empty", "", 0, 0, 0, false, true},
		{"Garbage", "next tuesday", 0, 0, 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, yearKnown, err := calendar.ParseSeedValue(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.yearKnown, yearKnown)
			if got.Year() != tt.wantYear || got.Month() != tt.wantMonth || got.Day() != tt.wantDay {
				t.Errorf("ParseSeedValue(%q) = %v, want %d-%02d-%02d",
					tt.input, got, tt.wantYear, tt.wantMonth, tt.wantDay)
			}
		})
	}
}

// TestFirstSeed verifies scanning a multi-card stream for the first usable
// birthday.
func TestFirstSeed(t *testing.T) {
	stream := strings.Join([]string{
		"BEGIN:VCARD",
		"VERSION:4.0",
		"FN:No Birthday",
		"END:VCARD",
		"BEGIN:VCARD",
		"VERSION:4.0",
		"FN:Ada Lovelace",
		"BDAY:1815-12-10",
		"END:VCARD",
		"BEGIN:VCARD",
		"VERSION:4.0",
		"FN:Later Card",
		"BDAY:2000-01-01",
		"END:VCARD",
		"",
	}, "\r\n")

	entry, err := calendar.FirstSeed(context.Background(), strings.NewReader(stream))
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", entry.Name)
	assert.True(t, entry.YearKnown)
	assert.Equal(t, 1815, entry.Date.Year())
	assert.Equal(t, time.December, entry.Date.Month())
	assert.Equal(t, 10, entry.Date.Day())
}

// TestFirstSeed_SkipsUnparseable verifies cards with malformed BDAY values
// are skipped rather than aborting the scan.
func TestFirstSeed_SkipsUnparseable(t *testing.T) {
	stream := strings.Join([]string{
		"BEGIN:VCARD",
		"VERSION:4.0",
		"FN:Bad Date",
		"BDAY:someday",
		"END:VCARD",
		"BEGIN:VCARD",
		"VERSION:4.0",
		"FN:Good Date",
		"BDAY:--03-14",
		"END:VCARD",
		"",
	}, "\r\n")

	entry, err := calendar.FirstSeed(context.Background(), strings.NewReader(stream))
	require.NoError(t, err)
	assert.Equal(t, "Good Date", entry.Name)
	assert.False(t, entry.YearKnown, "Truncated BDAY carries no year")
}

// TestFirstSeed_NoUsableCard verifies the sentinel error when the stream is
// exhausted without a birthday.
func TestFirstSeed_NoUsableCard(t *testing.T) {
	stream := "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:Nobody\r\nEND:VCARD\r\n"

	_, err := calendar.FirstSeed(context.Background(), strings.NewReader(stream))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "BDAY")
}

// TestFirstSeed_ContextCancelled verifies the scan respects cancellation.
func TestFirstSeed_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := calendar.FirstSeed(ctx, strings.NewReader(""))
	assert.ErrorIs(t, err, context.Canceled)
}
