package types

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "opening hour", input: "09:00"},
		{name: "midnight", input: "00:00"},
		{name: "end of day", input: "24:00"},
		{name: "no leading zero", input: "9:00", wantErr: true},
		{name: "minutes overflow", input: "09:60", wantErr: true},
		{name: "hour overflow", input: "25:00", wantErr: true},
		{name: "after end of day", input: "24:30", wantErr: true},
		{name: "dash separator", input: "09-00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("17:30")

	next, err := ts.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("18:00"), next)

	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:30"))
	assert.False(t, TimeString("09:30").IsBefore("09:30"))
	assert.True(t, TimeString("18:00").IsAfter("17:59"))
	assert.Equal(t, 570, TimeString("09:30").Minutes())
}

func TestTimeString_On(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	day := time.Date(2026, 3, 10, 15, 45, 0, 0, loc)

	got := TimeString("09:30").On(day)

	assert.Equal(t, time.Date(2026, 3, 10, 9, 30, 0, 0, loc), got)
}

func TestTimeString_On_DaylightSavingDays(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	springForward := time.Date(2026, 3, 29, 0, 0, 0, 0, berlin)
	fallBack := time.Date(2026, 10, 25, 0, 0, 0, 0, berlin)

	assert.Equal(t, time.Date(2026, 3, 29, 9, 0, 0, 0, berlin), TimeString("09:00").On(springForward))
	assert.Equal(t, time.Date(2026, 10, 25, 9, 0, 0, 0, berlin), TimeString("09:00").On(fallBack))
	assert.Equal(t, 18, TimeString("18:00").On(springForward).Hour())
	assert.Equal(t, time.Date(2026, 10, 26, 0, 0, 0, 0, berlin), TimeString("24:00").On(fallBack))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:15:00"))
	assert.Equal(t, TimeString("10:15"), ts)

	require.NoError(t, ts.Scan([]byte("08:00")))
	assert.Equal(t, TimeString("08:00"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
