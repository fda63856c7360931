package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// PartnerStatus is the review state of a partner request. Once a request
// leaves pending it is terminal.
type PartnerStatus string

const (
	PartnerPending  PartnerStatus = "pending"
	PartnerAccepted PartnerStatus = "accepted"
	PartnerRejected PartnerStatus = "rejected"
)

// ErrAlreadyReviewed is returned when a second review is attempted on a
// request that already left the pending state.
var ErrAlreadyReviewed = errors.New("partner request already reviewed")

// PartnerRequest is one partnership application, scoped to a guild.
type PartnerRequest struct {
	RequestID   string        `bson:"_id" json:"requestId"`
	GuildID     string        `bson:"guild_id" json:"guildId"`
	UserID      string        `bson:"user_id" json:"userId"`
	Username    string        `bson:"username" json:"username"`
	ServerName  string        `bson:"server_name" json:"serverName"`
	Reason      string        `bson:"reason" json:"reason"`
	DiscordLink string        `bson:"discord_link" json:"discordLink"`
	Status      PartnerStatus `bson:"status" json:"status"`
	CreatedAt   int64         `bson:"created_at" json:"createdAt"`
	ReviewedAt  int64         `bson:"reviewed_at,omitempty" json:"reviewedAt,omitempty"`
	ReviewedBy  string        `bson:"reviewed_by,omitempty" json:"reviewedBy,omitempty"`
	// Set on acceptance only.
	ChannelID string `bson:"channel_id,omitempty" json:"channelId,omitempty"`
	RoleID    string `bson:"role_id,omitempty" json:"roleId,omitempty"`
}

// NewPartnerRequestID builds the request id the review DMs reference.
func NewPartnerRequestID(userID string, now int64) string {
	tail := userID
	if len(tail) > 4 {
		tail = tail[len(tail)-4:]
	}
	return fmt.Sprintf("PR-%d-%s", now, tail)
}

// Review transitions the request out of pending exactly once. A second
// attempt fails with ErrAlreadyReviewed and mutates nothing.
func (r *PartnerRequest) Review(status PartnerStatus, reviewedBy string, now int64) error {
	if r.Status != PartnerPending {
		return ErrAlreadyReviewed
	}
	r.Status = status
	r.ReviewedAt = now
	r.ReviewedBy = reviewedBy
	return nil
}

// PartnerConfig holds the per-guild partner workflow configuration. A guild
// with no receiver cannot accept request submissions.
type PartnerConfig struct {
	GuildID    string `bson:"guild" json:"guildId"`
	ReceiverID string `bson:"receiver_id" json:"receiverId"`
}

var channelNameStrip = regexp.MustCompile(`[^a-zA-Z0-9\s-]`)

// PartnerChannelName derives the partner channel name from the applicant's
// server name: strip everything outside [a-zA-Z0-9 space hyphen], truncate
// to 50 runes, lowercase, spaces to hyphens, comet prefix.
func PartnerChannelName(serverName string) string {
	clean := strings.TrimSpace(channelNameStrip.ReplaceAllString(serverName, ""))
	if len(clean) > 50 {
		clean = clean[:50]
	}
	name := strings.ToLower("☄️-" + clean)
	return strings.Join(strings.Fields(name), "-")
}
