package models

import "errors"

// Rank classifies a redeem code and the user key it issues.
type Rank string

const (
	RankBuyer       Rank = "buyer"
	RankDevelopment Rank = "development"
	RankStaff       Rank = "staff"
	RankProvider    Rank = "provider"
	RankMeytic      Rank = "meytic"
	RankHack        Rank = "hack"

	// RankRoleAccess marks keys auto-issued to users who hold the panel's
	// required role without ever redeeming a code.
	RankRoleAccess Rank = "Role Access"
)

// Errors returned by RedeemCode.Consume.
var (
	ErrCodeAlreadyUsed = errors.New("redeem code already used")
	ErrCodeWrongGuild  = errors.New("redeem code bound to another guild")
)

// RedeemCode is a redeemable token. Buyer codes are single-use and pinned to
// the first redeeming user and guild; every other rank is a reusable
// template that seeds a UserKey on each redemption.
type RedeemCode struct {
	Code        string `bson:"_id" json:"code"`
	Rank        Rank   `bson:"rank" json:"rank"`
	Duration    string `bson:"duration,omitempty" json:"duration,omitempty"`
	Used        bool   `bson:"used" json:"used"`
	UsedBy      string `bson:"used_by,omitempty" json:"usedBy,omitempty"`
	UsedInGuild string `bson:"used_in_guild,omitempty" json:"usedInGuild,omitempty"`
	CreatedAt   int64  `bson:"created_at" json:"createdAt"`
	CreatedBy   string `bson:"created_by" json:"createdBy"`
}

// Consume validates a redemption attempt and, for buyer codes, pins the code
// to the user and guild. Re-redeeming by the original user in the original
// guild is tolerated as idempotent and never rewrites the pins. Non-buyer
// codes pass through untouched.
func (c *RedeemCode) Consume(userID, guildID string) error {
	if c.Rank != RankBuyer {
		return nil
	}

	if c.Used && c.UsedBy != userID {
		return ErrCodeAlreadyUsed
	}
	if c.UsedBy != "" && c.UsedBy != userID {
		return ErrCodeAlreadyUsed
	}
	if c.UsedInGuild != "" && c.UsedInGuild != guildID {
		return ErrCodeWrongGuild
	}

	if !c.Used {
		c.Used = true
		c.UsedBy = userID
		c.UsedInGuild = guildID
	}
	return nil
}

// UserKey is the single entitlement key a user holds. A later redemption
// overwrites it; there is never more than one key per user.
type UserKey struct {
	UserID     string `bson:"user" json:"userId"`
	Key        string `bson:"key" json:"key"`
	Rank       Rank   `bson:"rank" json:"rank"`
	Duration   string `bson:"duration" json:"duration"`
	RedeemedAt int64  `bson:"redeemed_at" json:"redeemedAt"`
	// GuildID pins buyer keys to the guild they were redeemed in.
	GuildID   string `bson:"guild_id" json:"guildId"`
	Script    string `bson:"script" json:"script"`
	PanelType string `bson:"panel_type" json:"panelType"`
}

// BoundToOtherGuild reports whether a buyer key refuses to operate in the
// given guild. Keys of any other rank are guild-agnostic.
func (k *UserKey) BoundToOtherGuild(guildID string) bool {
	return k != nil && k.Rank == RankBuyer && k.GuildID != "" && k.GuildID != guildID
}
