// Package partner implements the partnership application workflow: submit,
// review, and the guild provisioning that acceptance triggers.
package partner

import (
	"errors"
	"fmt"
	"time"

	"github.com/ValuamorSystems/ValuamorBotGo/pkg/logger"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/models"
)

// PartnerRoleName and PartnerCategoryName are the fixed structures the
// acceptance saga provisions inside the guild.
const (
	PartnerRoleName     = "Partner"
	PartnerCategoryName = "☃️ Partner"
)

// Errors returned by the workflow.
var (
	ErrInsufficientPermission = errors.New("reviewer lacks manage roles and channels")
)

// RequestStore is the slice of the database layer the workflow needs.
type RequestStore interface {
	GetPartnerConfig(guildID string) (*models.PartnerConfig, error)
	GetPartnerRequest(requestID string) (*models.PartnerRequest, error)
	SavePartnerRequest(req *models.PartnerRequest) (*models.PartnerRequest, error)
}

// Provisioner performs the guild mutations of the acceptance saga.
type Provisioner interface {
	EnsureRole(guildID, name string) (roleID string, err error)
	AssignRole(guildID, userID, roleID string) error
	EnsureCategory(guildID, name string) (categoryID string, err error)
	CreateTextChannel(guildID, categoryID, name string) (channelID string, err error)
	PostWelcome(channelID string, req *models.PartnerRequest) error
}

// Notifier delivers the workflow's direct messages. All sends are
// best-effort; a failure never fails the operation.
type Notifier interface {
	NotifyReceiver(receiverID string, req *models.PartnerRequest) error
	NotifyRequester(req *models.PartnerRequest) error
}

// SubmitForm carries the fields of the partnership application modal.
type SubmitForm struct {
	ServerName  string
	Reason      string
	DiscordLink string
}

// Workflow glues the store, provisioner and notifier together.
type Workflow struct {
	store       RequestStore
	provisioner Provisioner
	notifier    Notifier
	now         func() int64
}

// NewWorkflow creates a partner workflow. The notifier may be nil.
func NewWorkflow(store RequestStore, provisioner Provisioner, notifier Notifier) *Workflow {
	return &Workflow{
		store:       store,
		provisioner: provisioner,
		notifier:    notifier,
		now:         func() int64 { return time.Now().UnixMilli() },
	}
}

// Submit files a new partnership application. The guild must have a
// configured receiver; the request starts pending and both parties get a
// best-effort DM.
func (w *Workflow) Submit(guildID, userID, username string, form SubmitForm) (*models.PartnerRequest, error) {
	cfg, err := w.store.GetPartnerConfig(guildID)
	if err != nil {
		return nil, err
	}

	now := w.now()
	req := &models.PartnerRequest{
		RequestID:   models.NewPartnerRequestID(userID, now),
		GuildID:     guildID,
		UserID:      userID,
		Username:    username,
		ServerName:  form.ServerName,
		Reason:      form.Reason,
		DiscordLink: form.DiscordLink,
		Status:      models.PartnerPending,
		CreatedAt:   now,
	}

	saved, err := w.store.SavePartnerRequest(req)
	if err != nil {
		return nil, err
	}

	if w.notifier != nil {
		if err := w.notifier.NotifyReceiver(cfg.ReceiverID, saved); err != nil {
			logger.Warn(fmt.Sprintf("Review prompt for %s failed: %v", saved.RequestID, err), "Partner")
		}
		if err := w.notifier.NotifyRequester(saved); err != nil {
			logger.Warn(fmt.Sprintf("Submission receipt for %s failed: %v", saved.RequestID, err), "Partner")
		}
	}

	return saved, nil
}

// Accept reviews a pending request positively and provisions the partner
// structures in the guild. The status only flips to accepted after every
// provisioning step succeeded; a mid-saga failure leaves the request
// pending so the reviewer can retry. Completed sub-steps are not rolled
// back, the find-or-create steps absorb the retry.
func (w *Workflow) Accept(requestID, guildID, reviewerID string, canManage bool) (*models.PartnerRequest, error) {
	if !canManage {
		return nil, ErrInsufficientPermission
	}

	req, err := w.store.GetPartnerRequest(requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != models.PartnerPending {
		return nil, models.ErrAlreadyReviewed
	}

	roleID, err := w.provisioner.EnsureRole(guildID, PartnerRoleName)
	if err != nil {
		return nil, err
	}

	// The requester may have left the guild; a failed assignment is not
	// fatal to the partnership itself.
	if err := w.provisioner.AssignRole(guildID, req.UserID, roleID); err != nil {
		logger.Warn(fmt.Sprintf("Role assignment for %s failed: %v", req.RequestID, err), "Partner")
	}

	categoryID, err := w.provisioner.EnsureCategory(guildID, PartnerCategoryName)
	if err != nil {
		return nil, err
	}

	channelID, err := w.provisioner.CreateTextChannel(guildID, categoryID, models.PartnerChannelName(req.ServerName))
	if err != nil {
		return nil, err
	}

	if err := w.provisioner.PostWelcome(channelID, req); err != nil {
		return nil, err
	}

	if err := req.Review(models.PartnerAccepted, reviewerID, w.now()); err != nil {
		return nil, err
	}
	req.ChannelID = channelID
	req.RoleID = roleID

	saved, err := w.store.SavePartnerRequest(req)
	if err != nil {
		return nil, err
	}

	if w.notifier != nil {
		if err := w.notifier.NotifyRequester(saved); err != nil {
			logger.Warn(fmt.Sprintf("Acceptance notice for %s failed: %v", saved.RequestID, err), "Partner")
		}
	}

	return saved, nil
}

// Reject reviews a pending request negatively. No provisioning happens.
func (w *Workflow) Reject(requestID, reviewerID string) (*models.PartnerRequest, error) {
	req, err := w.store.GetPartnerRequest(requestID)
	if err != nil {
		return nil, err
	}

	if err := req.Review(models.PartnerRejected, reviewerID, w.now()); err != nil {
		return nil, err
	}

	saved, err := w.store.SavePartnerRequest(req)
	if err != nil {
		return nil, err
	}

	if w.notifier != nil {
		if err := w.notifier.NotifyRequester(saved); err != nil {
			logger.Warn(fmt.Sprintf("Rejection notice for %s failed: %v", saved.RequestID, err), "Partner")
		}
	}

	return saved, nil
}
