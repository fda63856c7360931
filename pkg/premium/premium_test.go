package premium

import (
	"errors"
	"testing"

	"github.com/ValuamorSystems/ValuamorBotGo/pkg/models"
)

const dayMillis = int64(24 * 60 * 60 * 1000)

type fakeStore struct {
	records map[string]*models.PremiumBuyer
	saves   int
	listErr error
	saveErr error
}

func newFakeStore(records ...*models.PremiumBuyer) *fakeStore {
	s := &fakeStore{records: make(map[string]*models.PremiumBuyer)}
	for _, r := range records {
		s.records[r.UserID] = r
	}
	return s
}

func (s *fakeStore) ListPremiumBuyers() ([]*models.PremiumBuyer, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]*models.PremiumBuyer, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	return out, nil
}

func (s *fakeStore) SavePremiumBuyer(record *models.PremiumBuyer) (*models.PremiumBuyer, error) {
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	s.saves++
	s.records[record.UserID] = record
	return record, nil
}

type fakeNotifier struct {
	notified []string
	err      error
}

func (n *fakeNotifier) NotifyExpired(record *models.PremiumBuyer) error {
	n.notified = append(n.notified, record.UserID)
	return n.err
}

func TestSweepFlagsDueRecords(t *testing.T) {
	now := int64(1700000000000)
	due := models.NewPremiumBuyer("due", "admin", now-10*dayMillis)
	due.AddTime(models.DurationDays, 5, "admin", now-10*dayMillis)
	active := models.NewPremiumBuyer("active", "admin", now)
	active.AddTime(models.DurationDays, 30, "admin", now)
	lifetime := models.NewPremiumBuyer("lifetime", "admin", now)
	lifetime.AddTime(models.DurationLifetime, 0, "admin", now)

	store := newFakeStore(due, active, lifetime)
	notifier := &fakeNotifier{}
	sweeper := NewSweeper(store, notifier)

	flagged, err := sweeper.SweepExpirations(now)
	if err != nil {
		t.Fatalf("SweepExpirations() returned error: %v", err)
	}
	if flagged != 1 {
		t.Errorf("flagged = %d, want 1", flagged)
	}
	if !due.Expired {
		t.Error("due record should be marked expired")
	}
	if due.ExpiredAt != now {
		t.Errorf("ExpiredAt = %d, want %d", due.ExpiredAt, now)
	}
	if active.Expired || lifetime.Expired {
		t.Error("active and lifetime records must not be flagged")
	}
	if len(notifier.notified) != 1 || notifier.notified[0] != "due" {
		t.Errorf("notified = %v, want [due]", notifier.notified)
	}
}

func TestSweepIsIdempotent(t *testing.T) {
	now := int64(1700000000000)
	due := models.NewPremiumBuyer("due", "admin", now-10*dayMillis)
	due.AddTime(models.DurationDays, 5, "admin", now-10*dayMillis)

	store := newFakeStore(due)
	notifier := &fakeNotifier{}
	sweeper := NewSweeper(store, notifier)

	if flagged, _ := sweeper.SweepExpirations(now); flagged != 1 {
		t.Fatalf("first sweep flagged = %d, want 1", flagged)
	}
	if flagged, _ := sweeper.SweepExpirations(now + dayMillis); flagged != 0 {
		t.Errorf("second sweep flagged = %d, want 0", flagged)
	}
	if len(notifier.notified) != 1 {
		t.Errorf("notified %d times, want exactly once", len(notifier.notified))
	}
}

func TestSweepAfterReGrant(t *testing.T) {
	now := int64(1700000000000)
	record := models.NewPremiumBuyer("user", "admin", now-10*dayMillis)
	record.AddTime(models.DurationDays, 5, "admin", now-10*dayMillis)

	store := newFakeStore(record)
	notifier := &fakeNotifier{}
	sweeper := NewSweeper(store, notifier)

	sweeper.SweepExpirations(now)
	if !record.Expired {
		t.Fatal("record should be expired after first sweep")
	}

	// A new grant resets the flag, so a later expiry notifies again.
	record.AddTime(models.DurationDays, 1, "admin", now)
	if record.Expired {
		t.Fatal("grant should reset the expired flag")
	}

	flagged, _ := sweeper.SweepExpirations(now + 2*dayMillis)
	if flagged != 1 {
		t.Errorf("flagged = %d, want 1 after re-grant expiry", flagged)
	}
	if len(notifier.notified) != 2 {
		t.Errorf("notified %d times, want 2", len(notifier.notified))
	}
}

func TestSweepNotifierFailureStillPersists(t *testing.T) {
	now := int64(1700000000000)
	due := models.NewPremiumBuyer("due", "admin", now-10*dayMillis)
	due.AddTime(models.DurationDays, 5, "admin", now-10*dayMillis)

	store := newFakeStore(due)
	notifier := &fakeNotifier{err: errors.New("dm closed")}
	sweeper := NewSweeper(store, notifier)

	flagged, err := sweeper.SweepExpirations(now)
	if err != nil {
		t.Fatalf("SweepExpirations() returned error: %v", err)
	}
	if flagged != 1 {
		t.Errorf("flagged = %d, want 1", flagged)
	}
	if store.saves != 1 {
		t.Errorf("saves = %d, want 1", store.saves)
	}
}

func TestSweepListError(t *testing.T) {
	store := newFakeStore()
	store.listErr = errors.New("db offline")
	sweeper := NewSweeper(store, nil)

	if _, err := sweeper.SweepExpirations(0); err == nil {
		t.Error("SweepExpirations() should surface the store error")
	}
}

func TestAuthorizeScriptAccessWithRole(t *testing.T) {
	// A role holder without a key gets a Role Access key issued.
	key, err := AuthorizeScriptAccess(true, false, nil)
	if err != nil {
		t.Fatalf("AuthorizeScriptAccess() returned error: %v", err)
	}
	if key.Rank != models.RankRoleAccess {
		t.Errorf("Rank = %v, want %v", key.Rank, models.RankRoleAccess)
	}
	if key.Duration != RoleAccessDuration {
		t.Errorf("Duration = %v, want %v", key.Duration, RoleAccessDuration)
	}

	// An existing key is kept as-is.
	existing := &models.UserKey{Rank: models.RankBuyer, Key: "KEY-TEST"}
	key, err = AuthorizeScriptAccess(true, false, existing)
	if err != nil {
		t.Fatalf("AuthorizeScriptAccess() returned error: %v", err)
	}
	if key != existing {
		t.Error("role holder with a key should keep the existing key")
	}
}

func TestAuthorizeScriptAccessWithoutRole(t *testing.T) {
	if _, err := AuthorizeScriptAccess(false, false, nil); !errors.Is(err, ErrNoKey) {
		t.Errorf("err = %v, want ErrNoKey", err)
	}

	buyerKey := &models.UserKey{Rank: models.RankBuyer}
	if _, err := AuthorizeScriptAccess(false, false, buyerKey); !errors.Is(err, ErrPremiumRequired) {
		t.Errorf("err = %v, want ErrPremiumRequired", err)
	}
	if _, err := AuthorizeScriptAccess(false, true, buyerKey); err != nil {
		t.Errorf("buyer key with active premium should pass, got %v", err)
	}

	staffKey := &models.UserKey{Rank: models.RankStaff}
	if _, err := AuthorizeScriptAccess(false, false, staffKey); err != nil {
		t.Errorf("non-buyer key should not need premium, got %v", err)
	}
}

func TestAuthorizeRoleGrant(t *testing.T) {
	if err := AuthorizeRoleGrant(nil, true, "g1"); !errors.Is(err, ErrNoKey) {
		t.Errorf("err = %v, want ErrNoKey", err)
	}

	key := &models.UserKey{Rank: models.RankBuyer, GuildID: "g1"}
	if err := AuthorizeRoleGrant(key, false, "g1"); !errors.Is(err, ErrPremiumRequired) {
		t.Errorf("err = %v, want ErrPremiumRequired", err)
	}
	if err := AuthorizeRoleGrant(key, true, "g2"); !errors.Is(err, ErrKeyBoundElsewhere) {
		t.Errorf("err = %v, want ErrKeyBoundElsewhere", err)
	}
	if err := AuthorizeRoleGrant(key, true, "g1"); err != nil {
		t.Errorf("matching guild should pass, got %v", err)
	}

	// Non-buyer keys are guild-agnostic.
	staff := &models.UserKey{Rank: models.RankStaff, GuildID: "g1"}
	if err := AuthorizeRoleGrant(staff, true, "g2"); err != nil {
		t.Errorf("staff key should be guild-agnostic, got %v", err)
	}
}
