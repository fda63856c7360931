package models

// PanelStatus is the operational state of a public panel. Anything but
// active disables the user-facing buttons.
type PanelStatus string

const (
	PanelActive      PanelStatus = "active"
	PanelBanned      PanelStatus = "banned"
	PanelMaintenance PanelStatus = "maintenance"
	PanelDown        PanelStatus = "down"
	PanelBlacklist   PanelStatus = "blacklist"
)

// DefaultScript is the payload served when a panel has no script configured.
const DefaultScript = `loadstring(game:HttpGet("https://example.com/script.lua"))()`

// Panel is the configuration of one public control panel (the original two
// are "development" and "development2").
type Panel struct {
	Type         string      `bson:"_id" json:"panelType"`
	Title        string      `bson:"title,omitempty" json:"title,omitempty"`
	Description  string      `bson:"description,omitempty" json:"description,omitempty"`
	ChannelID    string      `bson:"channel_id,omitempty" json:"channelId,omitempty"`
	MessageID    string      `bson:"message_id,omitempty" json:"messageId,omitempty"`
	Script       string      `bson:"script,omitempty" json:"script,omitempty"`
	RequiredRole string      `bson:"required_role,omitempty" json:"requiredRole,omitempty"`
	Status       PanelStatus `bson:"status,omitempty" json:"status,omitempty"`
}

// EffectiveStatus returns the configured status, defaulting to active.
func (p *Panel) EffectiveStatus() PanelStatus {
	if p == nil || p.Status == "" {
		return PanelActive
	}
	return p.Status
}

// EffectiveScript returns the configured script payload, falling back to the
// default placeholder.
func (p *Panel) EffectiveScript() string {
	if p == nil || p.Script == "" {
		return DefaultScript
	}
	return p.Script
}

// Configured reports whether the panel can be sent to its channel.
func (p *Panel) Configured() bool {
	return p != nil && p.Title != "" && p.ChannelID != ""
}

// HWID is a user's stored hardware id, resettable from the panel.
type HWID struct {
	UserID string `bson:"user" json:"userId"`
	Value  string `bson:"value" json:"value"`
	SetAt  int64  `bson:"set_at" json:"setAt"`
}
