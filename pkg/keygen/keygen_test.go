package keygen

import (
	"regexp"
	"testing"
)

var (
	redeemPattern = regexp.MustCompile(`^Valuamor-[0-9A-Z]{3}-[0-9A-Z]{3}$`)
	keyPattern    = regexp.MustCompile(`^KEY-[0-9A-Z]{13}$`)
	devPattern    = regexp.MustCompile(`^DEV-[0-9A-Z]+-[0-9A-Z]{6}$`)
)

func TestRedeemCodeFormat(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := RedeemCode()
		if !redeemPattern.MatchString(code) {
			t.Fatalf("RedeemCode() = %q, want match for %v", code, redeemPattern)
		}
	}
}

func TestUserKeyFormat(t *testing.T) {
	for i := 0; i < 50; i++ {
		key := UserKey()
		if !keyPattern.MatchString(key) {
			t.Fatalf("UserKey() = %q, want match for %v", key, keyPattern)
		}
	}
}

func TestDevKeyFormat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		key := DevKey()
		if !devPattern.MatchString(key) {
			t.Fatalf("DevKey() = %q, want match for %v", key, devPattern)
		}
		if seen[key] {
			t.Fatalf("DevKey() produced duplicate %q", key)
		}
		seen[key] = true
	}
}
