package partner

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/ValuamorSystems/ValuamorBotGo/pkg/database"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/models"
	partnerflow "github.com/ValuamorSystems/ValuamorBotGo/pkg/partner"
)

// Custom ids routed by the interaction handler.
const (
	CustomIDApply      = "partner:apply"
	ModalApply         = "partner:apply-modal"
	InputServerName    = "partner-server-name"
	InputReason        = "partner-reason"
	InputDiscordLink   = "partner-discord-link"
	CustomIDAcceptBase = "partner:accept:"
	CustomIDRejectBase = "partner:reject:"
)

// requestStore adapts the database service functions to the workflow store.
type requestStore struct{}

func (requestStore) GetPartnerConfig(guildID string) (*models.PartnerConfig, error) {
	return database.GetPartnerConfig(guildID)
}

func (requestStore) GetPartnerRequest(requestID string) (*models.PartnerRequest, error) {
	return database.GetPartnerRequest(requestID)
}

func (requestStore) SavePartnerRequest(req *models.PartnerRequest) (*models.PartnerRequest, error) {
	return database.SavePartnerRequest(req)
}

// guildProvisioner provisions partner roles and channels through the gateway
// session.
type guildProvisioner struct {
	session *discordgo.Session
}

func (p *guildProvisioner) EnsureRole(guildID, name string) (string, error) {
	roles, err := p.session.GuildRoles(guildID)
	if err != nil {
		return "", err
	}
	for _, role := range roles {
		if role.Name == name {
			return role.ID, nil
		}
	}

	color := 0x00BFFF
	hoist := true
	role, err := p.session.GuildRoleCreate(guildID, &discordgo.RoleParams{
		Name:  name,
		Color: &color,
		Hoist: &hoist,
	})
	if err != nil {
		return "", err
	}
	return role.ID, nil
}

func (p *guildProvisioner) AssignRole(guildID, userID, roleID string) error {
	return p.session.GuildMemberRoleAdd(guildID, userID, roleID)
}

func (p *guildProvisioner) EnsureCategory(guildID, name string) (string, error) {
	channels, err := p.session.GuildChannels(guildID)
	if err != nil {
		return "", err
	}
	for _, ch := range channels {
		if ch.Type == discordgo.ChannelTypeGuildCategory && ch.Name == name {
			return ch.ID, nil
		}
	}

	category, err := p.session.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name: name,
		Type: discordgo.ChannelTypeGuildCategory,
	})
	if err != nil {
		return "", err
	}
	return category.ID, nil
}

func (p *guildProvisioner) CreateTextChannel(guildID, categoryID, name string) (string, error) {
	channel, err := p.session.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:     name,
		Type:     discordgo.ChannelTypeGuildText,
		ParentID: categoryID,
	})
	if err != nil {
		return "", err
	}
	return channel.ID, nil
}

func (p *guildProvisioner) PostWelcome(channelID string, req *models.PartnerRequest) error {
	embed := &discordgo.MessageEmbed{
		Title:       "🤝 Welcome, Partner! / Selamat Datang, Partner!",
		Description: fmt.Sprintf("**%s** is now an official partner. / **%s** kini menjadi partner resmi.", req.ServerName, req.ServerName),
		Color:       0x57F287,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Owner", Value: fmt.Sprintf("<@%s>", req.UserID), Inline: true},
			{Name: "Server", Value: req.DiscordLink, Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "💫 Valuamor Systems | ValuamorBot Go",
		},
	}
	_, err := p.session.ChannelMessageSendEmbed(channelID, embed)
	return err
}

// dmNotifier delivers review and decision notices over direct messages.
type dmNotifier struct {
	session *discordgo.Session
}

func (n *dmNotifier) sendDM(userID string, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	channel, err := n.session.UserChannelCreate(userID)
	if err != nil {
		return err
	}
	_, err = n.session.ChannelMessageSendComplex(channel.ID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	})
	return err
}

func (n *dmNotifier) NotifyReceiver(receiverID string, req *models.PartnerRequest) error {
	embed := &discordgo.MessageEmbed{
		Title: "📨 New Partner Request",
		Color: 0x5865F2,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Request ID", Value: fmt.Sprintf("`%s`", req.RequestID), Inline: false},
			{Name: "Applicant", Value: fmt.Sprintf("%s (<@%s>)", req.Username, req.UserID), Inline: false},
			{Name: "Server Name", Value: req.ServerName, Inline: false},
			{Name: "Reason", Value: req.Reason, Inline: false},
			{Name: "Invite", Value: req.DiscordLink, Inline: false},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "💫 Valuamor Systems | ValuamorBot Go",
		},
	}
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Accept",
					Style:    discordgo.SuccessButton,
					CustomID: CustomIDAcceptBase + req.RequestID,
				},
				discordgo.Button{
					Label:    "Reject",
					Style:    discordgo.DangerButton,
					CustomID: CustomIDRejectBase + req.RequestID,
				},
			},
		},
	}
	return n.sendDM(receiverID, embed, components)
}

func (n *dmNotifier) NotifyRequester(req *models.PartnerRequest) error {
	var embed *discordgo.MessageEmbed
	switch req.Status {
	case models.PartnerAccepted:
		embed = &discordgo.MessageEmbed{
			Title:       "🎉 Partner Request Accepted / Permintaan Partner Diterima",
			Description: fmt.Sprintf("Your request for **%s** was accepted! / Permintaanmu untuk **%s** diterima!", req.ServerName, req.ServerName),
			Color:       0x57F287,
		}
	case models.PartnerRejected:
		embed = &discordgo.MessageEmbed{
			Title:       "😔 Partner Request Rejected / Permintaan Partner Ditolak",
			Description: fmt.Sprintf("Your request for **%s** was rejected. / Permintaanmu untuk **%s** ditolak.", req.ServerName, req.ServerName),
			Color:       0xED4245,
		}
	default:
		embed = &discordgo.MessageEmbed{
			Title:       "📬 Partner Request Received / Permintaan Partner Diterima",
			Description: fmt.Sprintf("Your request `%s` is pending review. / Permintaanmu `%s` sedang ditinjau.", req.RequestID, req.RequestID),
			Color:       0x5865F2,
		}
	}
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: "💫 Valuamor Systems | ValuamorBot Go",
	}
	return n.sendDM(req.UserID, embed, nil)
}

// NewWorkflow wires the partner workflow to Mongo and the gateway session.
func NewWorkflow(session *discordgo.Session) *partnerflow.Workflow {
	return partnerflow.NewWorkflow(
		requestStore{},
		&guildProvisioner{session: session},
		&dmNotifier{session: session},
	)
}
