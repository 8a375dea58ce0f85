package member

import (
	"math"
	"time"
)

// State is the display state of a member's subscription.
type State string

const (
	StateActive        State = "active"
	StateExpiringSoon  State = "expiring"
	StateExpired       State = "expired"
	StateTrial         State = "trial"
	StateInactive      State = "inactive"
	StateIndeterminate State = "indeterminate"
)

// DefaultExpiringSoonDays is the remaining-days threshold at or below which an
// active subscription is reported as expiring soon.
const DefaultExpiringSoonDays = 10

var states = []State{StateActive, StateExpiringSoon, StateExpired, StateTrial, StateInactive, StateIndeterminate}

// Subscription is derived from a Member on every read and never stored.
type Subscription struct {
	State         State      `json:"state"`
	EndDate       *time.Time `json:"endDate"`
	RemainingDays *int       `json:"remainingDays"`
}

// EndDate adds months calendar months to joiningDate.
// Month overflow normalizes like time.AddDate: Jan 31 + 1 month is Mar 2 (Mar 3 in leap years).
func EndDate(joiningDate time.Time, months int) time.Time {
	return joiningDate.AddDate(0, months, 0)
}

// RemainingDays is ceil((endDate - today) in days). It decreases by exactly one per day.
func RemainingDays(endDate, today time.Time) int {
	return int(math.Ceil(endDate.Sub(today).Hours() / 24))
}

// StateFor maps remaining days onto the presentation policy.
func StateFor(remainingDays, expiringSoonDays int) State {
	switch {
	case remainingDays <= 0:
		return StateExpired
	case remainingDays <= expiringSoonDays:
		return StateExpiringSoon
	default:
		return StateActive
	}
}

// Derive computes the subscription of m as seen on today.
// Trial and inactive members report their stored status without any date arithmetic;
// a missing joining date or subscription length yields StateIndeterminate.
func Derive(m Member, today time.Time, expiringSoonDays int) Subscription {
	switch m.Status {
	case StatusTrial:
		return Subscription{State: StateTrial}
	case StatusInactive:
		return Subscription{State: StateInactive}
	}
	if m.JoiningDate == nil || m.MonthsOfSubscription == nil {
		return Subscription{State: StateIndeterminate}
	}

	end := EndDate(*m.JoiningDate, *m.MonthsOfSubscription)
	days := RemainingDays(end, today)
	return Subscription{
		State:         StateFor(days, expiringSoonDays),
		EndDate:       &end,
		RemainingDays: &days,
	}
}

// EffectiveStatus is the status a member should be shown with: an active
// member whose subscription has run out reads as inactive.
func EffectiveStatus(m Member, sub Subscription) string {
	if m.Status == StatusActive && sub.State == StateExpired {
		return StatusInactive
	}
	return m.Status
}
