package models

import "errors"

// ErrDevKeyAlreadyUsed is returned when a single-use development key is
// redeemed a second time.
var ErrDevKeyAlreadyUsed = errors.New("development key already used")

// DevelopmentKey is a staff-issued key tied to a role label and a player.
// Unlimited keys can be redeemed any number of times; the rest are
// single-use.
type DevelopmentKey struct {
	Key       string `bson:"_id" json:"key"`
	Role      string `bson:"role" json:"role"`
	PlayerID  string `bson:"player_id" json:"playerId"`
	Unlimited bool   `bson:"unlimited" json:"unlimited"`
	Used      bool   `bson:"used" json:"used"`
	UsedBy    string `bson:"used_by,omitempty" json:"usedBy,omitempty"`
	CreatedAt int64  `bson:"created_at" json:"createdAt"`
	CreatedBy string `bson:"created_by" json:"createdBy"`
}

// Consume marks a single-use key as used by the given user. Unlimited keys
// never flip Used.
func (k *DevelopmentKey) Consume(userID string) error {
	if k.Unlimited {
		return nil
	}
	if k.Used {
		return ErrDevKeyAlreadyUsed
	}
	k.Used = true
	k.UsedBy = userID
	return nil
}
