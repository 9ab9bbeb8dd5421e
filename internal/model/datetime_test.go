package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", tod.String())
	assert.Equal(t, TimeOfDay(9*60+30), tod)

	_, err = ParseTimeOfDay("9:30")
	assert.Error(t, err)
	_, err = ParseTimeOfDay("24:00")
	assert.Error(t, err)
	_, err = ParseTimeOfDay("12:60")
	assert.Error(t, err)
	_, err = ParseTimeOfDay("banana")
	assert.Error(t, err)
	_, err = ParseTimeOfDay("")
	assert.Error(t, err)

	midnight, err := ParseTimeOfDay("00:00")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(0), midnight)
}

func TestTimeOfDayAdd(t *testing.T) {
	tod, _ := ParseTimeOfDay("11:00")
	assert.Equal(t, "12:00", tod.Add(60).String())
	assert.Equal(t, "11:15", tod.Add(15).String())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", d.String())
	// 2026-03-02 is a Monday.
	assert.Equal(t, 0, d.WeekdayIndex())

	// 2026-03-08 is a Sunday.
	sun, err := ParseDate("2026-03-08")
	require.NoError(t, err)
	assert.Equal(t, 6, sun.WeekdayIndex())

	_, err = ParseDate("02/03/2026")
	assert.Error(t, err)
	_, err = ParseDate("not-a-date")
	assert.Error(t, err)
}

func TestDateComparisons(t *testing.T) {
	a := NewDate(2026, time.March, 2)
	b := NewDate(2026, time.March, 3)
	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.True(t, a.Equal(NewDate(2026, time.March, 2)))
}

func TestJSONRoundTrip(t *testing.T) {
	appt := Appointment{
		Date: NewDate(2026, time.March, 2),
		Time: TimeOfDay(10 * 60),
	}
	raw, err := json.Marshal(appt)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"date":"2026-03-02"`)
	assert.Contains(t, string(raw), `"time":"10:00"`)

	var decoded Appointment
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.True(t, decoded.Date.Equal(appt.Date))
	assert.Equal(t, appt.Time, decoded.Time)
}

func TestWindowOverlapsHalfOpen(t *testing.T) {
	w := func(start, end string) *AvailabilityWindow {
		s, _ := ParseTimeOfDay(start)
		e, _ := ParseTimeOfDay(end)
		return &AvailabilityWindow{StartTime: s, EndTime: e}
	}

	assert.True(t, w("09:00", "12:00").Overlaps(w("11:00", "13:00")))
	assert.True(t, w("09:00", "12:00").Overlaps(w("10:00", "11:00")))
	// Touching endpoints do not conflict.
	assert.False(t, w("09:00", "12:00").Overlaps(w("12:00", "14:00")))
	assert.False(t, w("12:00", "14:00").Overlaps(w("09:00", "12:00")))
	assert.False(t, w("09:00", "10:00").Overlaps(w("10:30", "11:00")))
}

func TestWindowContains(t *testing.T) {
	s, _ := ParseTimeOfDay("09:00")
	e, _ := ParseTimeOfDay("12:00")
	w := &AvailabilityWindow{StartTime: s, EndTime: e}

	eleven, _ := ParseTimeOfDay("11:00")
	assert.True(t, w.Contains(eleven, 60))

	elevenFifteen, _ := ParseTimeOfDay("11:15")
	assert.False(t, w.Contains(elevenFifteen, 60))

	before, _ := ParseTimeOfDay("08:45")
	assert.False(t, w.Contains(before, 30))
}
