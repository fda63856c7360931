// Package models defines the persisted entities of the entitlement system
// and the pure state transitions that operate on them.
package models

import "fmt"

// DurationKind is the closed set of duration units a premium grant can use.
type DurationKind string

const (
	DurationLifetime DurationKind = "lifetime"
	DurationSeconds  DurationKind = "seconds"
	DurationDays     DurationKind = "days"
	DurationMonths   DurationKind = "months"
	DurationYears    DurationKind = "years"
)

// Fixed unit table in milliseconds. Months and years use the 30/365-day
// approximation, not the calendar.
const (
	millisPerSecond int64 = 1000
	millisPerHour   int64 = 60 * 60 * 1000
	millisPerDay    int64 = 24 * millisPerHour
	millisPerMonth  int64 = 30 * millisPerDay
	millisPerYear   int64 = 365 * millisPerDay
)

// UnitMillis returns the milliseconds represented by one unit of the kind.
// Lifetime has no unit and returns 0.
func (k DurationKind) UnitMillis() int64 {
	switch k {
	case DurationSeconds:
		return millisPerSecond
	case DurationDays:
		return millisPerDay
	case DurationMonths:
		return millisPerMonth
	case DurationYears:
		return millisPerYear
	default:
		return 0
	}
}

// Valid reports whether the kind is one of the known duration units.
func (k DurationKind) Valid() bool {
	switch k {
	case DurationLifetime, DurationSeconds, DurationDays, DurationMonths, DurationYears:
		return true
	}
	return false
}

// PremiumBuyer represents the premium entitlement of a single user.
// ExpiryDate is epoch milliseconds; 0 means lifetime or not yet set.
type PremiumBuyer struct {
	UserID     string `bson:"user" json:"userId"`
	AddedDate  int64  `bson:"added_date" json:"addedDate"`
	Lifetime   bool   `bson:"lifetime" json:"lifetime"`
	ExpiryDate int64  `bson:"expiry_date,omitempty" json:"expiryDate,omitempty"`
	// Expired is the sticky "already notified" flag flipped by the sweep.
	Expired    bool   `bson:"expired" json:"expired"`
	ExpiredAt  int64  `bson:"expired_at,omitempty" json:"expiredAt,omitempty"`
	GrantedBy  string `bson:"granted_by,omitempty" json:"grantedBy,omitempty"`
	LastUpdate int64  `bson:"last_update,omitempty" json:"lastUpdate,omitempty"`
}

// NewPremiumBuyer creates a fresh, inactive record for a user.
func NewPremiumBuyer(userID, grantedBy string, now int64) *PremiumBuyer {
	return &PremiumBuyer{
		UserID:    userID,
		AddedDate: now,
		GrantedBy: grantedBy,
	}
}

// AddTime applies one accrual to the record. A lifetime grant is sticky: it
// clears any expiry and can only be undone by deleting the record. Any other
// kind extends from max(now, current expiry) so stacking never shortens an
// active entitlement. Every accrual resets the sticky Expired flag.
func (b *PremiumBuyer) AddTime(kind DurationKind, value int64, grantedBy string, now int64) {
	b.Expired = false
	b.ExpiredAt = 0
	b.GrantedBy = grantedBy
	b.LastUpdate = now

	if kind == DurationLifetime {
		b.Lifetime = true
		b.ExpiryDate = 0
		return
	}

	// Lifetime is only removed by deleting the record, never by stacking a
	// timed grant on top of it.
	if b.Lifetime {
		return
	}

	base := now
	if b.ExpiryDate > now {
		base = b.ExpiryDate
	}
	b.ExpiryDate = base + value*kind.UnitMillis()
	b.Lifetime = false
}

// IsActiveAt reports whether the entitlement is live at the given instant.
func (b *PremiumBuyer) IsActiveAt(now int64) bool {
	if b == nil {
		return false
	}
	if b.Lifetime {
		return true
	}
	return b.ExpiryDate != 0 && now < b.ExpiryDate
}

// ShouldExpireAt reports whether the sweep has to flag this record: a
// non-lifetime record past its expiry that has not been flagged yet.
func (b *PremiumBuyer) ShouldExpireAt(now int64) bool {
	return !b.Lifetime && b.ExpiryDate != 0 && now >= b.ExpiryDate && !b.Expired
}

// MarkExpired flips the one-shot Expired flag. Returns false if the record
// was already flagged so the caller never notifies twice.
func (b *PremiumBuyer) MarkExpired(now int64) bool {
	if b.Expired {
		return false
	}
	b.Expired = true
	b.ExpiredAt = now
	return true
}

// RemainingTimeAt renders the remaining entitlement time the way the panel
// embeds show it.
func (b *PremiumBuyer) RemainingTimeAt(now int64) string {
	if b == nil {
		return ""
	}
	if b.Lifetime {
		return "Lifetime"
	}
	if b.ExpiryDate == 0 || now >= b.ExpiryDate {
		return "Expired / Berakhir"
	}

	diff := b.ExpiryDate - now
	days := diff / millisPerDay
	hours := (diff % millisPerDay) / millisPerHour

	if days > 0 {
		return fmt.Sprintf("%d days %d hours / %d hari %d jam", days, hours, days, hours)
	}
	return fmt.Sprintf("%d hours / %d jam", hours, hours)
}
