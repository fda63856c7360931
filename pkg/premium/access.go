package premium

import (
	"errors"

	"github.com/ValuamorSystems/ValuamorBotGo/pkg/models"
)

// Errors returned by the access decisions.
var (
	ErrNoKey             = errors.New("no key redeemed")
	ErrPremiumRequired   = errors.New("active premium required")
	ErrKeyBoundElsewhere = errors.New("key bound to another guild")
)

// RoleAccessDuration labels keys issued purely from holding the panel's
// required role.
const RoleAccessDuration = "Permanent (Role)"

// AuthorizeScriptAccess decides whether a panel user may fetch the script.
// Holding the panel's required role is always enough; without it the user
// needs a redeemed key, and buyer keys additionally need active premium.
// When a role holder has no key, a Role Access key is returned for the
// caller to persist.
func AuthorizeScriptAccess(hasRequiredRole bool, premiumActive bool, key *models.UserKey) (*models.UserKey, error) {
	if hasRequiredRole {
		if key != nil {
			return key, nil
		}
		return &models.UserKey{
			Rank:     models.RankRoleAccess,
			Duration: RoleAccessDuration,
		}, nil
	}

	if key == nil {
		return nil, ErrNoKey
	}
	if key.Rank == models.RankBuyer && !premiumActive {
		return nil, ErrPremiumRequired
	}
	return key, nil
}

// AuthorizeRoleGrant decides whether a panel user may claim the premium
// role in a guild. Requires a redeemed key and active premium; buyer keys
// only work in the guild they were redeemed in.
func AuthorizeRoleGrant(key *models.UserKey, premiumActive bool, guildID string) error {
	if key == nil {
		return ErrNoKey
	}
	if !premiumActive {
		return ErrPremiumRequired
	}
	if key.BoundToOtherGuild(guildID) {
		return ErrKeyBoundElsewhere
	}
	return nil
}
