package domain

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 10, hour, minute, 0, 0, time.UTC)
}

func TestTimeRange_Overlaps(t *testing.T) {
	booked := TimeRange{Start: at(10, 0), End: at(11, 0)}

	tests := []struct {
		name string
		slot TimeRange
		want bool
	}{
		{name: "ends at booking start", slot: TimeRange{Start: at(9, 0), End: at(10, 0)}, want: false},
		{name: "starts at booking end", slot: TimeRange{Start: at(11, 0), End: at(12, 0)}, want: false},
		{name: "overlaps tail", slot: TimeRange{Start: at(9, 30), End: at(10, 30)}, want: true},
		{name: "inside", slot: TimeRange{Start: at(10, 15), End: at(10, 45)}, want: true},
		{name: "covers", slot: TimeRange{Start: at(9, 0), End: at(12, 0)}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.slot.Overlaps(booked))
			assert.Equal(t, tt.want, booked.Overlaps(tt.slot))
		})
	}
}

func TestAppointment_BlocksProfessional(t *testing.T) {
	anna := uuid.New()
	bruno := uuid.New()

	assigned := &Appointment{ProfessionalID: &anna, Status: StatusScheduled}
	assert.True(t, assigned.BlocksProfessional(anna))
	assert.False(t, assigned.BlocksProfessional(bruno))

	legacy := &Appointment{Status: StatusScheduled}
	assert.True(t, legacy.BlocksProfessional(anna))
	assert.True(t, legacy.BlocksProfessional(bruno))

	canceled := &Appointment{ProfessionalID: &anna, Status: StatusCanceled}
	assert.False(t, canceled.BlocksProfessional(anna))

	noShow := &Appointment{ProfessionalID: &anna, Status: StatusNoShow}
	assert.True(t, noShow.BlocksProfessional(anna))
}

func TestBusinessHours_IsAligned(t *testing.T) {
	hours := BusinessHours{Open: "09:00", Close: "18:00", StepMinutes: 30}

	assert.True(t, hours.IsAligned(at(9, 0)))
	assert.True(t, hours.IsAligned(at(17, 30)))
	assert.False(t, hours.IsAligned(at(9, 15)))
	assert.False(t, hours.IsAligned(at(8, 30)))
}

func TestBusinessHours_WindowOnDaylightSavingDay(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	hours := BusinessHours{Open: "09:00", Close: "18:00", StepMinutes: 30}
	day := time.Date(2026, 3, 29, 0, 0, 0, 0, berlin)

	window := hours.Window(day)

	assert.Equal(t, time.Date(2026, 3, 29, 9, 0, 0, 0, berlin), window.Start)
	assert.Equal(t, time.Date(2026, 3, 29, 18, 0, 0, 0, berlin), window.End)
	assert.True(t, hours.IsAligned(time.Date(2026, 3, 29, 9, 30, 0, 0, berlin)))
	assert.False(t, hours.IsAligned(time.Date(2026, 3, 29, 8, 30, 0, 0, berlin)))
}

func TestBusinessHours_IsOpenOn(t *testing.T) {
	hours := BusinessHours{ClosedWeekdays: []time.Weekday{time.Sunday}}

	assert.False(t, hours.IsOpenOn(time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)))
	assert.True(t, hours.IsOpenOn(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)))
}

func TestParseProfessionalSelector(t *testing.T) {
	sel, err := ParseProfessionalSelector("any")
	require.NoError(t, err)
	assert.True(t, sel.IsAny())

	sel, err = ParseProfessionalSelector("")
	require.NoError(t, err)
	assert.True(t, sel.IsAny())

	id := uuid.New()
	sel, err = ParseProfessionalSelector(id.String())
	require.NoError(t, err)
	require.False(t, sel.IsAny())
	assert.Equal(t, id, *sel.ProfessionalID)
	assert.Equal(t, id.String(), sel.String())

	_, err = ParseProfessionalSelector("someone")
	assert.Error(t, err)
}

func TestSession_CanManage(t *testing.T) {
	pro := uuid.New()

	admin := &Session{UserID: uuid.New(), Role: RoleAdmin}
	self := &Session{UserID: pro, Role: RoleProfessional}
	other := &Session{UserID: uuid.New(), Role: RoleProfessional}
	client := &Session{UserID: pro, Role: RoleClient}
	var anonymous *Session

	assert.True(t, admin.CanManage(pro))
	assert.True(t, self.CanManage(pro))
	assert.False(t, other.CanManage(pro))
	assert.False(t, client.CanManage(pro))
	assert.False(t, anonymous.CanManage(pro))
}

func TestProfessionalRevenue_Commission(t *testing.T) {
	pct := 40.0
	rev := ProfessionalRevenue{Total: 250, CommissionPercentage: &pct}
	assert.InDelta(t, 100.0, rev.Commission(), 0.0001)

	assert.Zero(t, (&ProfessionalRevenue{Total: 250}).Commission())
}

func TestBookingPolicy_DayBoundaries(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	policy := BookingPolicy{Location: loc, AdvanceBookingDays: 30}

	// 01:30 UTC is still the previous day in Sao Paulo (UTC-3)
	now := time.Date(2026, 3, 10, 1, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, loc), policy.Today(now))
	assert.False(t, policy.IsPast(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), now))
	assert.True(t, policy.IsPast(time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), now))

	day := policy.DayRange(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 3, 9, 3, 0, 0, 0, time.UTC), day.Start.UTC())
	assert.Equal(t, 24*time.Hour, day.Duration())

	assert.False(t, policy.IsBeyondHorizon(time.Date(2026, 4, 8, 0, 0, 0, 0, time.UTC), now))
	assert.True(t, policy.IsBeyondHorizon(time.Date(2026, 4, 9, 0, 0, 0, 0, time.UTC), now))
}

func TestFreeProfessionals(t *testing.T) {
	ana, bia, caio := uuid.New(), uuid.New(), uuid.New()
	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	candidate := TimeRange{Start: base, End: base.Add(time.Hour)}

	appointments := []*Appointment{
		{ProfessionalID: &ana, StartTime: base.Add(30 * time.Minute), EndTime: base.Add(90 * time.Minute), Status: StatusScheduled},
		{ProfessionalID: &bia, StartTime: base, EndTime: base.Add(time.Hour), Status: StatusCanceled},
		{ProfessionalID: &caio, StartTime: base.Add(time.Hour), EndTime: base.Add(2 * time.Hour), Status: StatusScheduled},
	}

	free := FreeProfessionals(candidate, []uuid.UUID{ana, bia, caio}, appointments)
	assert.Equal(t, []uuid.UUID{bia, caio}, free)

	legacy := append(appointments, &Appointment{StartTime: base, EndTime: base.Add(15 * time.Minute), Status: StatusNoShow})
	assert.Empty(t, FreeProfessionals(candidate, []uuid.UUID{ana, bia, caio}, legacy))
}
