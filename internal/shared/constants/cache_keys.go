package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTLs for the eventbook application.
// Pattern: eventbook:{module}:{operation}:{identifier}:{params?}

const (
	CACHE_PREFIX = "eventbook"
)

// Availability is the hottest and most volatile read; keep the TTL short so
// a stale count never outlives a hold by much.
const (
	TTL_SLOT_AVAILABILITY = 30 * time.Second
	TTL_SLOT_DATA         = 5 * time.Minute
	TTL_EVENT_DETAIL      = 1 * time.Hour
)

const (
	CACHE_KEY_SLOT_AVAILABILITY = CACHE_PREFIX + ":slots:availability" // + :event:X:date:Y:slot:Z
	CACHE_KEY_SLOT_DATA         = CACHE_PREFIX + ":slots:data:event:"  // + event-id
	CACHE_KEY_EVENT_DETAIL      = CACHE_PREFIX + ":events:detail:"     // + event-id
)

// BuildSlotAvailabilityKey builds the cache key for one capacity cell.
func BuildSlotAvailabilityKey(eventID, date, slotName string) string {
	return fmt.Sprintf("%s:event:%s:date:%s:slot:%s", CACHE_KEY_SLOT_AVAILABILITY, eventID, date, slotName)
}

// BuildEventAvailabilityPattern matches every availability key of one event,
// for invalidation after a hold, release, or cleanup.
func BuildEventAvailabilityPattern(eventID string) string {
	return fmt.Sprintf("%s:event:%s:*", CACHE_KEY_SLOT_AVAILABILITY, eventID)
}

// BuildSlotDataKey builds the cache key for an event's slot configuration.
func BuildSlotDataKey(eventID string) string {
	return CACHE_KEY_SLOT_DATA + eventID
}
