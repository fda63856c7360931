package models

import "testing"

const (
	day  = int64(24 * 60 * 60 * 1000)
	hour = int64(60 * 60 * 1000)
)

func TestUnitMillis(t *testing.T) {
	tests := []struct {
		kind DurationKind
		want int64
	}{
		{DurationSeconds, 1000},
		{DurationDays, day},
		{DurationMonths, 30 * day},
		{DurationYears, 365 * day},
		{DurationLifetime, 0},
	}

	for _, tt := range tests {
		if got := tt.kind.UnitMillis(); got != tt.want {
			t.Errorf("UnitMillis(%s) = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestAddTimeFreshRecord(t *testing.T) {
	now := int64(1_000_000)
	b := NewPremiumBuyer("user1", "admin", now)
	b.AddTime(DurationDays, 30, "admin", now)

	if b.Lifetime {
		t.Error("Lifetime = true, want false")
	}
	if b.Expired {
		t.Error("Expired = true, want false")
	}
	if want := now + 30*day; b.ExpiryDate != want {
		t.Errorf("ExpiryDate = %v, want %v", b.ExpiryDate, want)
	}
}

func TestAddTimeExtendsFromExistingExpiry(t *testing.T) {
	t0 := int64(1_000_000)
	b := NewPremiumBuyer("user1", "admin", t0)
	b.AddTime(DurationDays, 30, "admin", t0)

	// Second grant while still active stacks on top of the existing expiry,
	// not on top of now.
	t1 := t0 + 5*day
	b.AddTime(DurationDays, 10, "admin", t1)

	if want := t0 + 40*day; b.ExpiryDate != want {
		t.Errorf("ExpiryDate = %v, want %v", b.ExpiryDate, want)
	}
}

func TestAddTimeExpiredRecordExtendsFromNow(t *testing.T) {
	t0 := int64(1_000_000)
	b := NewPremiumBuyer("user1", "admin", t0)
	b.AddTime(DurationDays, 1, "admin", t0)

	// Grant after expiry: base is now, not the stale expiry.
	t1 := t0 + 10*day
	b.AddTime(DurationDays, 7, "admin", t1)

	if want := t1 + 7*day; b.ExpiryDate != want {
		t.Errorf("ExpiryDate = %v, want %v", b.ExpiryDate, want)
	}
}

func TestAddTimeNeverShortensActiveExpiry(t *testing.T) {
	t0 := int64(0)
	b := NewPremiumBuyer("user1", "admin", t0)
	b.AddTime(DurationYears, 1, "admin", t0)
	existing := b.ExpiryDate

	b.AddTime(DurationSeconds, 1, "admin", t0+day)
	if b.ExpiryDate < existing {
		t.Errorf("ExpiryDate = %v shrank below existing %v", b.ExpiryDate, existing)
	}
}

func TestLifetimeIsSticky(t *testing.T) {
	now := int64(1_000_000)
	b := NewPremiumBuyer("user1", "admin", now)
	b.AddTime(DurationLifetime, 0, "admin", now)

	if !b.Lifetime || b.ExpiryDate != 0 {
		t.Fatalf("lifetime grant: Lifetime=%v ExpiryDate=%v, want true/0", b.Lifetime, b.ExpiryDate)
	}

	// A later timed grant must not downgrade a lifetime record; removal
	// happens only by deleting the record.
	b.AddTime(DurationDays, 7, "admin", now+day)
	if !b.Lifetime || b.ExpiryDate != 0 {
		t.Errorf("timed grant on lifetime record: Lifetime=%v ExpiryDate=%v, want true/0", b.Lifetime, b.ExpiryDate)
	}
	if !b.IsActiveAt(now + 100*365*day) {
		t.Error("lifetime record should be active arbitrarily far in the future")
	}
}

func TestAccrualResetsExpiredFlag(t *testing.T) {
	t0 := int64(1_000_000)
	b := NewPremiumBuyer("user1", "admin", t0)
	b.AddTime(DurationDays, 1, "admin", t0)

	t1 := t0 + 2*day
	if !b.MarkExpired(t1) {
		t.Fatal("MarkExpired returned false on first crossing")
	}
	if b.MarkExpired(t1 + 1) {
		t.Error("MarkExpired flipped twice for the same crossing")
	}

	b.AddTime(DurationDays, 30, "admin", t1)
	if b.Expired {
		t.Error("Expired flag survived a top-up")
	}
	if !b.IsActiveAt(t1 + day) {
		t.Error("record inactive after top-up")
	}
}

func TestShouldExpireAt(t *testing.T) {
	t0 := int64(1_000_000)

	fresh := NewPremiumBuyer("u", "admin", t0)
	if fresh.ShouldExpireAt(t0) {
		t.Error("record with no expiry should never be swept")
	}

	lifetime := NewPremiumBuyer("u", "admin", t0)
	lifetime.AddTime(DurationLifetime, 0, "admin", t0)
	if lifetime.ShouldExpireAt(t0 + 100*day) {
		t.Error("lifetime record should never be swept")
	}

	timed := NewPremiumBuyer("u", "admin", t0)
	timed.AddTime(DurationDays, 1, "admin", t0)
	if timed.ShouldExpireAt(t0 + hour) {
		t.Error("active record flagged early")
	}
	if !timed.ShouldExpireAt(t0 + 2*day) {
		t.Error("expired record not flagged")
	}

	timed.MarkExpired(t0 + 2*day)
	if timed.ShouldExpireAt(t0 + 3*day) {
		t.Error("already-flagged record flagged again")
	}
}

func TestIsActiveAt(t *testing.T) {
	now := int64(1_000_000)

	var nilBuyer *PremiumBuyer
	if nilBuyer.IsActiveAt(now) {
		t.Error("nil buyer reported active")
	}

	b := NewPremiumBuyer("u", "admin", now)
	if b.IsActiveAt(now) {
		t.Error("buyer with no grant reported active")
	}

	b.AddTime(DurationSeconds, 60, "admin", now)
	if !b.IsActiveAt(now + 30*1000) {
		t.Error("buyer inactive inside window")
	}
	if b.IsActiveAt(now + 61*1000) {
		t.Error("buyer active past expiry")
	}
	if b.IsActiveAt(b.ExpiryDate) {
		t.Error("expiry instant counted as active")
	}
}

func TestRemainingTimeAt(t *testing.T) {
	now := int64(1_000_000)

	lifetime := NewPremiumBuyer("u", "admin", now)
	lifetime.AddTime(DurationLifetime, 0, "admin", now)
	if got := lifetime.RemainingTimeAt(now); got != "Lifetime" {
		t.Errorf("RemainingTimeAt = %q, want %q", got, "Lifetime")
	}

	expired := NewPremiumBuyer("u", "admin", now)
	expired.AddTime(DurationSeconds, 1, "admin", now)
	if got := expired.RemainingTimeAt(now + 2000); got != "Expired / Berakhir" {
		t.Errorf("RemainingTimeAt = %q, want %q", got, "Expired / Berakhir")
	}

	b := NewPremiumBuyer("u", "admin", now)
	b.AddTime(DurationDays, 3, "admin", now)
	if got := b.RemainingTimeAt(now + 5*hour); got != "2 days 19 hours / 2 hari 19 jam" {
		t.Errorf("RemainingTimeAt = %q, want %q", got, "2 days 19 hours / 2 hari 19 jam")
	}

	// Under one day the days component is omitted.
	if got := b.RemainingTimeAt(b.ExpiryDate - 5*hour); got != "5 hours / 5 jam" {
		t.Errorf("RemainingTimeAt = %q, want %q", got, "5 hours / 5 jam")
	}
}
