package models

import "time"

// SortEvent is a single classification decision made by the sorting device.
// The device supplies the ID, which acts as the idempotency key: re-submitting
// an event with the same ID fully replaces the stored row.
//
// Timestamp is kept as the device-supplied ISO-8601 string; ISO-8601 sorts
// lexicographically, so ordering and range scans work on the raw value without
// a parse step. FormattedTime is a read-side projection for dashboards and is
// never stored.
//
// Example JSON (as served in the recent-events feed):
//
//	{
//	  "id": "b1946ac9-2d14-4c7a-a7f3-1f6f52a7e0c1",
//	  "timestamp": "2024-01-02T15:04:05",
//	  "item_type": "can",
//	  "confidence": 0.95,
//	  "sort_destination": "recycling",
//	  "image_id": "4f6c1b2e",
//	  "metadata": {"model_version": "v3"},
//	  "formatted_time": "Jan 2, 2024, 3:04 PM"
//	}
type SortEvent struct {
	ID              string  `json:"id"`
	Timestamp       string  `json:"timestamp"`
	ItemType        string  `json:"item_type"`
	Confidence      float64 `json:"confidence"`
	SortDestination string  `json:"sort_destination"`
	ImageID         string  `json:"image_id,omitempty"`
	UserID          string  `json:"user_id,omitempty"`
	Metadata        any     `json:"metadata,omitempty"`
	FormattedTime   string  `json:"formatted_time,omitempty"`
}

// displayTimeFormat is the human-readable timestamp shown on the dashboard.
const displayTimeFormat = "Jan 2, 2006, 3:04 PM"

// eventTimeLayouts are the ISO-8601 variants the sorting device is known to
// produce: local time with and without fractional seconds, and UTC/offset forms.
var eventTimeLayouts = []string{
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	time.RFC3339,
}

// FormatEventTime renders a stored ISO-8601 timestamp for display. An
// unparsable timestamp is returned verbatim so one bad record never fails a
// whole feed.
func FormatEventTime(timestamp string) string {
	for _, layout := range eventTimeLayouts {
		if t, err := time.Parse(layout, timestamp); err == nil {
			return t.Format(displayTimeFormat)
		}
	}
	return timestamp
}
