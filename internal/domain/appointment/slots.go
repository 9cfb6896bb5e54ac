package appointment

import (
	"sort"
	"time"
)

// SlotRecord is the minimal projection of an appointment needed to compute
// occupied slots.
type SlotRecord struct {
	Status           Status
	MainSlot         time.Time
	AlternativeSlots []time.Time
}

// BookedSlots returns the sorted, de-duplicated HH:MM times occupied on day
// (UTC) by live appointments. Alternatives count as occupied.
func BookedSlots(records []SlotRecord, day time.Time) []string {
	date := day.UTC().Format(DateLayout)
	seen := make(map[string]struct{})
	for _, r := range records {
		if !r.Status.IsLive() {
			continue
		}
		for _, t := range append([]time.Time{r.MainSlot}, r.AlternativeSlots...) {
			u := t.UTC()
			if u.Format(DateLayout) != date {
				continue
			}
			seen[u.Format(TimeLayout)] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// DayBounds returns [day, day+24h) in UTC.
func DayBounds(day time.Time) (time.Time, time.Time) {
	u := day.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}
