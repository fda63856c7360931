// Package keygen generates the redeem codes, user keys and development keys
// handed out by the entitlement system.
package keygen

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// randomBase36 returns n uppercase base-36 characters.
func randomBase36(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a
		// time-derived string so issuance still works.
		ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixNano(), 36))
		for len(ts) < n {
			ts += ts
		}
		return ts[:n]
	}
	for i, b := range buf {
		buf[i] = base36[int(b)%len(base36)]
	}
	return string(buf)
}

// RedeemCode generates a code in the public Valuamor-XXX-YYY format: two
// independent base-36 triplets.
func RedeemCode() string {
	return fmt.Sprintf("Valuamor-%s-%s", randomBase36(3), randomBase36(3))
}

// UserKey generates the opaque token stored on a user's key.
func UserKey() string {
	return "KEY-" + randomBase36(13)
}

// DevKey generates a development key. The embedded base-36 timestamp keeps
// rapid issuance from colliding.
func DevKey() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	return fmt.Sprintf("DEV-%s-%s", ts, randomBase36(6))
}
