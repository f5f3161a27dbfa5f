package services

import "time"

const (
	slotLayout = "3:04 PM"
	dateLayout = "2006-01-02"
	// displayDateLayout renders dates in notifications, e.g. "Jun 1, 2025".
	displayDateLayout = "Jan 2, 2006"

	firstSlot    = 10 * time.Hour
	lastSlot     = 21 * time.Hour
	slotInterval = 30 * time.Minute
)

var timeSlots = buildTimeSlots()

func buildTimeSlots() []string {
	base := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	var slots []string
	for offset := firstSlot; offset <= lastSlot; offset += slotInterval {
		slots = append(slots, base.Add(offset).Format(slotLayout))
	}
	return slots
}

// TimeSlots returns the bookable times from "10:00 AM" to "9:00 PM".
func TimeSlots() []string {
	out := make([]string, len(timeSlots))
	copy(out, timeSlots)
	return out
}

func IsTimeSlot(s string) bool {
	for _, slot := range timeSlots {
		if slot == s {
			return true
		}
	}
	return false
}

func IsISODate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

func displayDate(iso string) string {
	d, err := time.Parse(dateLayout, iso)
	if err != nil {
		return iso
	}
	return d.Format(displayDateLayout)
}
