package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFilterLeadTime_Today(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 45, 0, 0, time.UTC)

	got := FormatSlots(FilterLeadTime(slots("10:00", "10:15", "10:30"), tuesday, now, 30*time.Minute))
	assert.Equal(t, []string{"10:15", "10:30"}, got)
}

func TestFilterLeadTime_FutureUntouched(t *testing.T) {
	now := time.Date(2026, 3, 9, 23, 59, 0, 0, time.UTC)
	in := slots("00:00", "09:00")

	assert.Equal(t, in, FilterLeadTime(in, tuesday, now, 30*time.Minute))
}

func TestFilterLeadTime_PastIsEmpty(t *testing.T) {
	now := time.Date(2026, 3, 11, 0, 1, 0, 0, time.UTC)

	assert.Empty(t, FilterLeadTime(slots("09:00", "23:30"), tuesday, now, 30*time.Minute))
}

func TestFilterLeadTime_LeadCrossesMidnight(t *testing.T) {
	now := time.Date(2026, 3, 10, 23, 45, 0, 0, time.UTC)

	assert.Empty(t, FilterLeadTime(slots("23:30"), tuesday, now, 30*time.Minute))
}

func TestFilterLeadTime_UsesLocationOfNow(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	// 02:00 UTC on the 11th is still the 10th at 23:00 local
	now := time.Date(2026, 3, 11, 2, 0, 0, 0, time.UTC).In(loc)

	assert.Equal(t, []string{"23:30"}, FormatSlots(FilterLeadTime(slots("23:00", "23:30"), tuesday, now, 30*time.Minute)))
}

func TestFilterLeadTime_SecondsCount(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 45, 30, 0, time.UTC)

	got := FormatSlots(FilterLeadTime(slots("10:15", "10:30"), tuesday, now, 30*time.Minute))
	assert.Equal(t, []string{"10:30"}, got)
}
