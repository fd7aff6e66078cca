package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHasEndedComparesCalendarDays(t *testing.T) {
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	endsToday := Event{EndDate: time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)}
	assert.False(t, endsToday.HasEnded(now), "event ending today is still bookable")

	endedYesterday := Event{EndDate: time.Date(2026, 9, 14, 23, 59, 0, 0, time.UTC)}
	assert.True(t, endedYesterday.HasEnded(now))

	endsTomorrow := Event{EndDate: time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC)}
	assert.False(t, endsTomorrow.HasEnded(now))
}

func TestStatusIsBookable(t *testing.T) {
	assert.True(t, StatusActive.IsBookable())
	assert.False(t, StatusInactive.IsBookable())
	assert.False(t, StatusEnded.IsBookable())
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusActive.IsValid())
	assert.True(t, StatusInactive.IsValid())
	assert.True(t, StatusEnded.IsValid())
	assert.False(t, Status("DRAFT").IsValid())
}
