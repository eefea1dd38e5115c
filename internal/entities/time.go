package entities

import "time"

// BandAt maps an hour of day onto a time band. The bands drive rarity
// tiers and day/night evolution gates.
func BandAt(hour int) TimeOfDay {
	switch {
	case hour >= 6 && hour < 12:
		return TimeMorning
	case hour >= 12 && hour < 18:
		return TimeDay
	case hour >= 18 && hour < 22:
		return TimeEvening
	default:
		return TimeNight
	}
}

// Band maps an instant onto a time band
func Band(t time.Time) TimeOfDay {
	return BandAt(t.Hour())
}

// IsDaytime reports whether the band counts as day for day/night
// binary gates; morning and day do, evening and night do not.
func (t TimeOfDay) IsDaytime() bool {
	return t == TimeMorning || t == TimeDay
}

// Matches reports whether a gate band admits the current band. A
// TimeDay gate admits any daytime band and a TimeNight gate admits any
// non-daytime band; morning and evening gates are exact.
func (t TimeOfDay) Matches(current TimeOfDay) bool {
	switch t {
	case TimeDay:
		return current.IsDaytime()
	case TimeNight:
		return !current.IsDaytime()
	default:
		return t == current
	}
}
