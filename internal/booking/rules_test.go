package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vipcaribbean/site-api/internal/availability"
	"github.com/vipcaribbean/site-api/internal/config"
)

// monday is 2025-06-16; the permitted Wednesday that week is 2025-06-18.
var monday = time.Date(2025, 6, 16, 10, 30, 0, 0, time.UTC)

func testRules(now time.Time) Rules {
	rules := NewRules(&config.BookingConfig{
		Weekday:      time.Wednesday,
		DayStart:     "09:00",
		DayEnd:       "12:00",
		SlotInterval: 5 * time.Minute,
	})
	rules.Now = func() time.Time { return now }
	return rules
}

func TestNextPermittedDate(t *testing.T) {
	rules := testRules(monday)

	next := rules.NextPermittedDate(time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC), next)

	// Today already the permitted weekday: roll a full week.
	next = rules.NextPermittedDate(time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 6, 25, 0, 0, 0, 0, time.UTC), next)

	// Day after: back to six days out.
	next = rules.NextPermittedDate(time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 6, 25, 0, 0, 0, 0, time.UTC), next)
}

func TestValidateDateRejectsPastAndToday(t *testing.T) {
	// 2025-06-18 is a Wednesday; with "now" on that same Wednesday both
	// today and any earlier Wednesday must be rejected regardless of
	// weekday.
	rules := testRules(time.Date(2025, 6, 18, 9, 0, 0, 0, time.UTC))

	var verr *ValidationError
	err := rules.ValidateDate("2025-06-18", availability.Snapshot{})
	require.ErrorAs(t, err, &verr)

	err = rules.ValidateDate("2025-06-11", availability.Snapshot{})
	require.Error(t, err)
}

func TestValidateDateRejectsWrongOccurrence(t *testing.T) {
	rules := testRules(monday)

	// A Thursday is never permitted.
	require.Error(t, rules.ValidateDate("2025-06-19", availability.Snapshot{}))

	// A Wednesday beyond the current occurrence is not offered yet.
	require.Error(t, rules.ValidateDate("2025-06-25", availability.Snapshot{}))

	// The single permitted occurrence passes.
	require.NoError(t, rules.ValidateDate("2025-06-18", availability.Snapshot{}))
}

func TestValidateDateRejectsBlockedPermittedDate(t *testing.T) {
	rules := testRules(monday)
	snapshot := availability.Snapshot{BlockedDates: []string{"2025-06-18"}}

	err := rules.ValidateDate("2025-06-18", snapshot)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "fecha", verr.Field)
}

func TestValidateDateRejectsMalformedInput(t *testing.T) {
	rules := testRules(monday)
	require.Error(t, rules.ValidateDate("18/06/2025", availability.Snapshot{}))
	require.Error(t, rules.ValidateDate("", availability.Snapshot{}))
}

func TestTimeSlots(t *testing.T) {
	rules := testRules(monday)
	slots := rules.TimeSlots()

	// 09:00 through 12:00 inclusive at 5 minute steps.
	require.Len(t, slots, 37)
	assert.Equal(t, "9:00 AM", slots[0])
	assert.Equal(t, "9:05 AM", slots[1])
	assert.Equal(t, "11:55 AM", slots[35])
	assert.Equal(t, "12:00 PM", slots[36])
}

func TestValidateTime(t *testing.T) {
	rules := testRules(monday)
	snapshot := availability.Snapshot{LockedTimeSlots: []string{"9:05 AM"}}

	require.NoError(t, rules.ValidateTime("9:00 AM", snapshot))
	require.Error(t, rules.ValidateTime("9:05 AM", snapshot))

	// Outside the window or not on the grid.
	require.Error(t, rules.ValidateTime("8:55 AM", snapshot))
	require.Error(t, rules.ValidateTime("12:05 PM", snapshot))
	require.Error(t, rules.ValidateTime("9:02 AM", snapshot))
}
