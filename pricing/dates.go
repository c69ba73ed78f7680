package pricing

import (
	"strings"
	"time"
)

const (
	// Orders placed before 18:00 local time can go out the same day.
	deliveryCutoffHour = 18
	// Furthest-out deliverable date, in days from today.
	maxLeadDays = 14
)

// MinDeliveryDate is today when now is before the 18:00 cutoff, tomorrow
// otherwise. The result is truncated to midnight in now's location.
func MinDeliveryDate(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if now.Hour() >= deliveryCutoffHour {
		day = day.AddDate(0, 0, 1)
	}
	return day
}

// MaxDeliveryDate is today plus the maximum lead time.
func MaxDeliveryDate(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, maxLeadDays)
}

// IsDeliveryDateEligible reports whether date can be delivered to borough,
// given the current time. Sundays are never deliverable; Manhattan only gets
// Tuesday and Friday runs.
func IsDeliveryDateEligible(now time.Time, borough string, date time.Time) bool {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(MinDeliveryDate(now)) || day.After(MaxDeliveryDate(now)) {
		return false
	}
	wd := day.Weekday()
	if wd == time.Sunday {
		return false
	}
	if strings.EqualFold(borough, "Manhattan") {
		return wd == time.Tuesday || wd == time.Friday
	}
	return true
}

// EligibleDeliveryDates lists every deliverable date in the allowed window.
func EligibleDeliveryDates(now time.Time, borough string) []time.Time {
	var dates []time.Time
	for d := MinDeliveryDate(now); !d.After(MaxDeliveryDate(now)); d = d.AddDate(0, 0, 1) {
		if IsDeliveryDateEligible(now, borough, d) {
			dates = append(dates, d)
		}
	}
	return dates
}
