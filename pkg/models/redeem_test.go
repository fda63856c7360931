package models

import "testing"

func buyerCode() *RedeemCode {
	return &RedeemCode{
		Code:      "Valuamor-ABC-123",
		Rank:      RankBuyer,
		Duration:  "30 days",
		CreatedAt: 1,
		CreatedBy: "owner",
	}
}

func TestBuyerCodeSingleUse(t *testing.T) {
	code := buyerCode()

	if err := code.Consume("userU", "guildG"); err != nil {
		t.Fatalf("first Consume returned error: %v", err)
	}
	if !code.Used || code.UsedBy != "userU" || code.UsedInGuild != "guildG" {
		t.Fatalf("pins not set: used=%v usedBy=%q usedInGuild=%q", code.Used, code.UsedBy, code.UsedInGuild)
	}

	// A different user is rejected permanently.
	if err := code.Consume("userV", "guildG"); err != ErrCodeAlreadyUsed {
		t.Errorf("second user Consume = %v, want ErrCodeAlreadyUsed", err)
	}
}

func TestBuyerCodeIdempotentReRedeem(t *testing.T) {
	code := buyerCode()
	if err := code.Consume("userU", "guildG"); err != nil {
		t.Fatalf("first Consume returned error: %v", err)
	}

	// The original user re-redeeming in the original guild is tolerated and
	// the pins never change.
	if err := code.Consume("userU", "guildG"); err != nil {
		t.Errorf("idempotent re-redeem returned error: %v", err)
	}
	if code.UsedBy != "userU" || code.UsedInGuild != "guildG" {
		t.Errorf("pins rewritten: usedBy=%q usedInGuild=%q", code.UsedBy, code.UsedInGuild)
	}
}

func TestBuyerCodeGuildPin(t *testing.T) {
	code := buyerCode()
	if err := code.Consume("userU", "guildG"); err != nil {
		t.Fatalf("first Consume returned error: %v", err)
	}

	if err := code.Consume("userU", "guildH"); err != ErrCodeWrongGuild {
		t.Errorf("cross-guild Consume = %v, want ErrCodeWrongGuild", err)
	}
}

func TestNonBuyerCodesAreReusable(t *testing.T) {
	for _, rank := range []Rank{RankDevelopment, RankStaff, RankProvider, RankMeytic, RankHack} {
		code := &RedeemCode{Code: "Valuamor-XYZ-789", Rank: rank}

		for i := 0; i < 3; i++ {
			if err := code.Consume("user", "guild"); err != nil {
				t.Errorf("rank %s: Consume #%d returned error: %v", rank, i+1, err)
			}
		}
		if code.Used {
			t.Errorf("rank %s: Used flag set on reusable code", rank)
		}
	}
}

func TestUserKeyGuildBinding(t *testing.T) {
	buyer := &UserKey{Key: "KEY-1", Rank: RankBuyer, GuildID: "guildG"}
	if buyer.BoundToOtherGuild("guildG") {
		t.Error("buyer key rejected its own guild")
	}
	if !buyer.BoundToOtherGuild("guildH") {
		t.Error("buyer key accepted a foreign guild")
	}

	staff := &UserKey{Key: "KEY-2", Rank: RankStaff, GuildID: "guildG"}
	if staff.BoundToOtherGuild("guildH") {
		t.Error("non-buyer key should be guild-agnostic")
	}
}

func TestDevelopmentKeyConsume(t *testing.T) {
	single := &DevelopmentKey{Key: "DEV-1", Role: "VIP", PlayerID: "p1"}
	if err := single.Consume("userU"); err != nil {
		t.Fatalf("first Consume returned error: %v", err)
	}
	if !single.Used || single.UsedBy != "userU" {
		t.Errorf("single-use key not marked: used=%v usedBy=%q", single.Used, single.UsedBy)
	}
	if err := single.Consume("userV"); err != ErrDevKeyAlreadyUsed {
		t.Errorf("second Consume = %v, want ErrDevKeyAlreadyUsed", err)
	}

	unlimited := &DevelopmentKey{Key: "DEV-2", Role: "VIP", PlayerID: "p1", Unlimited: true}
	for i := 0; i < 3; i++ {
		if err := unlimited.Consume("userU"); err != nil {
			t.Errorf("unlimited Consume #%d returned error: %v", i+1, err)
		}
	}
	if unlimited.Used {
		t.Error("Used flag set on unlimited key")
	}
}
