// Package normalize adapts the heterogeneous payload shapes produced by
// calendar, weather, scheduling and plan producers onto the canonical list
// types. Producers variously send a bare list, an object nesting the list
// under a known key, or an object nesting that object one level deeper.
// An unrecognized shape degrades to an empty list and a warning log; it is
// never an error.
package normalize

import (
	"encoding/json"
	"log/slog"

	"runcoach/internal/domain"
)

// maxDepth bounds the unwrapping of nested objects: a bare list, one wrapper
// object, or two.
const maxDepth = 2

// Wrapper keys recognized per producer, in lookup order.
var (
	calendarKeys  = []string{"events", "calendar", "items", "data"}
	weatherKeys   = []string{"weather", "forecast", "hourly", "entries", "data"}
	scheduledKeys = []string{"time_scheduled", "schedule", "items", "data"}
	planKeys      = []string{"sessions", "plan", "entries", "data"}
)

// CalendarEvents extracts calendar events from a producer payload.
func CalendarEvents(payload json.RawMessage) []domain.CalendarEvent {
	return decode[domain.CalendarEvent]("calendar", payload, calendarKeys)
}

// WeatherEntries extracts weather entries from a producer payload. The
// canonical-hour filter is applied separately at write time by the store.
func WeatherEntries(payload json.RawMessage) []domain.WeatherEntry {
	return decode[domain.WeatherEntry]("weather", payload, weatherKeys)
}

// ScheduledItems extracts time-scheduled items from a producer payload.
func ScheduledItems(payload json.RawMessage) []domain.ScheduledItem {
	return decode[domain.ScheduledItem]("time_scheduled", payload, scheduledKeys)
}

// PlanEntries extracts training-plan entries from a parsed plan payload.
func PlanEntries(payload json.RawMessage) []domain.PlanEntry {
	return decode[domain.PlanEntry]("plan", payload, planKeys)
}

func decode[T any](kind string, payload json.RawMessage, keys []string) []T {
	if list, ok := decodeList[T](payload, keys, 0); ok {
		return list
	}
	slog.Warn("Unrecognized payload shape, defaulting to empty list", "kind", kind)
	return []T{}
}

// decodeList tries the payload as a bare list first, then unwraps known
// wrapper keys up to maxDepth levels deep.
func decodeList[T any](payload json.RawMessage, keys []string, depth int) ([]T, bool) {
	var list []T
	if err := json.Unmarshal(payload, &list); err == nil {
		if list == nil {
			list = []T{}
		}
		return list, true
	}

	if depth >= maxDepth {
		return nil, false
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(payload, &wrapper); err != nil {
		return nil, false
	}
	for _, key := range keys {
		inner, ok := wrapper[key]
		if !ok {
			continue
		}
		if list, ok := decodeList[T](inner, keys, depth+1); ok {
			return list, true
		}
	}
	return nil, false
}
