package partner

import (
	"errors"
	"testing"

	"github.com/ValuamorSystems/ValuamorBotGo/pkg/models"
)

type fakeRequestStore struct {
	config   *models.PartnerConfig
	cfgErr   error
	requests map[string]*models.PartnerRequest
	saves    int
}

func newFakeRequestStore() *fakeRequestStore {
	return &fakeRequestStore{
		config:   &models.PartnerConfig{GuildID: "g1", ReceiverID: "receiver"},
		requests: make(map[string]*models.PartnerRequest),
	}
}

func (s *fakeRequestStore) GetPartnerConfig(guildID string) (*models.PartnerConfig, error) {
	if s.cfgErr != nil {
		return nil, s.cfgErr
	}
	return s.config, nil
}

func (s *fakeRequestStore) GetPartnerRequest(requestID string) (*models.PartnerRequest, error) {
	req, ok := s.requests[requestID]
	if !ok {
		return nil, errors.New("partner request not found")
	}
	return req, nil
}

func (s *fakeRequestStore) SavePartnerRequest(req *models.PartnerRequest) (*models.PartnerRequest, error) {
	s.saves++
	s.requests[req.RequestID] = req
	return req, nil
}

type fakeProvisioner struct {
	roleErr    error
	assignErr  error
	catErr     error
	channelErr error
	welcomeErr error
	assigned   []string
	channels   []string
}

func (p *fakeProvisioner) EnsureRole(guildID, name string) (string, error) {
	if p.roleErr != nil {
		return "", p.roleErr
	}
	return "role-1", nil
}

func (p *fakeProvisioner) AssignRole(guildID, userID, roleID string) error {
	if p.assignErr != nil {
		return p.assignErr
	}
	p.assigned = append(p.assigned, userID)
	return nil
}

func (p *fakeProvisioner) EnsureCategory(guildID, name string) (string, error) {
	if p.catErr != nil {
		return "", p.catErr
	}
	return "cat-1", nil
}

func (p *fakeProvisioner) CreateTextChannel(guildID, categoryID, name string) (string, error) {
	if p.channelErr != nil {
		return "", p.channelErr
	}
	p.channels = append(p.channels, name)
	return "chan-1", nil
}

func (p *fakeProvisioner) PostWelcome(channelID string, req *models.PartnerRequest) error {
	return p.welcomeErr
}

type fakePartnerNotifier struct {
	receiverNotices  int
	requesterNotices int
	err              error
}

func (n *fakePartnerNotifier) NotifyReceiver(receiverID string, req *models.PartnerRequest) error {
	n.receiverNotices++
	return n.err
}

func (n *fakePartnerNotifier) NotifyRequester(req *models.PartnerRequest) error {
	n.requesterNotices++
	return n.err
}

func newWorkflowAt(store *fakeRequestStore, prov *fakeProvisioner, notifier Notifier, now int64) *Workflow {
	w := NewWorkflow(store, prov, notifier)
	w.now = func() int64 { return now }
	return w
}

func submitPending(t *testing.T, w *Workflow) *models.PartnerRequest {
	t.Helper()
	req, err := w.Submit("g1", "user12345678", "tester", SubmitForm{
		ServerName:  "Cool Server",
		Reason:      "growth",
		DiscordLink: "https://discord.gg/cool",
	})
	if err != nil {
		t.Fatalf("Submit() returned error: %v", err)
	}
	return req
}

func TestSubmitCreatesPendingRequest(t *testing.T) {
	store := newFakeRequestStore()
	notifier := &fakePartnerNotifier{}
	w := newWorkflowAt(store, &fakeProvisioner{}, notifier, 1700000000000)

	req := submitPending(t, w)

	if req.Status != models.PartnerPending {
		t.Errorf("Status = %v, want pending", req.Status)
	}
	if req.RequestID != "PR-1700000000000-5678" {
		t.Errorf("RequestID = %v, want PR-1700000000000-5678", req.RequestID)
	}
	if notifier.receiverNotices != 1 {
		t.Errorf("receiver notices = %d, want 1", notifier.receiverNotices)
	}
	if notifier.requesterNotices != 1 {
		t.Errorf("requester notices = %d, want 1", notifier.requesterNotices)
	}
}

func TestSubmitWithoutReceiver(t *testing.T) {
	store := newFakeRequestStore()
	store.cfgErr = errors.New("partner receiver not configured")
	w := newWorkflowAt(store, &fakeProvisioner{}, nil, 0)

	if _, err := w.Submit("g1", "user1", "tester", SubmitForm{}); err == nil {
		t.Error("Submit() should fail when no receiver is configured")
	}
	if len(store.requests) != 0 {
		t.Error("failed submit must not persist a request")
	}
}

func TestSubmitNotifierFailureIsNotFatal(t *testing.T) {
	store := newFakeRequestStore()
	notifier := &fakePartnerNotifier{err: errors.New("dm closed")}
	w := newWorkflowAt(store, &fakeProvisioner{}, notifier, 1700000000000)

	req := submitPending(t, w)
	if store.requests[req.RequestID] == nil {
		t.Error("request should persist even when DMs fail")
	}
}

func TestAcceptProvisionsAndFlipsStatus(t *testing.T) {
	store := newFakeRequestStore()
	prov := &fakeProvisioner{}
	notifier := &fakePartnerNotifier{}
	w := newWorkflowAt(store, prov, notifier, 1700000000000)
	req := submitPending(t, w)

	accepted, err := w.Accept(req.RequestID, "g1", "reviewer", true)
	if err != nil {
		t.Fatalf("Accept() returned error: %v", err)
	}

	if accepted.Status != models.PartnerAccepted {
		t.Errorf("Status = %v, want accepted", accepted.Status)
	}
	if accepted.RoleID != "role-1" || accepted.ChannelID != "chan-1" {
		t.Errorf("provisioning ids = (%v, %v), want (role-1, chan-1)", accepted.RoleID, accepted.ChannelID)
	}
	if accepted.ReviewedBy != "reviewer" {
		t.Errorf("ReviewedBy = %v, want reviewer", accepted.ReviewedBy)
	}
	if len(prov.channels) != 1 || prov.channels[0] != "☄️-cool-server" {
		t.Errorf("channels = %v, want [☄️-cool-server]", prov.channels)
	}
	if len(prov.assigned) != 1 || prov.assigned[0] != "user12345678" {
		t.Errorf("assigned = %v, want [user12345678]", prov.assigned)
	}
}

func TestAcceptWithoutPermission(t *testing.T) {
	store := newFakeRequestStore()
	w := newWorkflowAt(store, &fakeProvisioner{}, nil, 1700000000000)
	req := submitPending(t, w)

	if _, err := w.Accept(req.RequestID, "g1", "reviewer", false); !errors.Is(err, ErrInsufficientPermission) {
		t.Errorf("err = %v, want ErrInsufficientPermission", err)
	}
	if store.requests[req.RequestID].Status != models.PartnerPending {
		t.Error("permission failure must not mutate the request")
	}
}

func TestAcceptProvisioningFailureLeavesPending(t *testing.T) {
	store := newFakeRequestStore()
	prov := &fakeProvisioner{channelErr: errors.New("missing access")}
	w := newWorkflowAt(store, prov, nil, 1700000000000)
	req := submitPending(t, w)

	if _, err := w.Accept(req.RequestID, "g1", "reviewer", true); err == nil {
		t.Fatal("Accept() should surface the provisioning error")
	}
	if got := store.requests[req.RequestID].Status; got != models.PartnerPending {
		t.Errorf("Status = %v, want pending after failed saga", got)
	}

	// A retry after the transient failure completes the saga.
	prov.channelErr = nil
	if _, err := w.Accept(req.RequestID, "g1", "reviewer", true); err != nil {
		t.Fatalf("retry Accept() returned error: %v", err)
	}
	if got := store.requests[req.RequestID].Status; got != models.PartnerAccepted {
		t.Errorf("Status = %v, want accepted after retry", got)
	}
}

func TestAcceptRoleAssignmentFailureIsNotFatal(t *testing.T) {
	store := newFakeRequestStore()
	prov := &fakeProvisioner{assignErr: errors.New("member left")}
	w := newWorkflowAt(store, prov, nil, 1700000000000)
	req := submitPending(t, w)

	accepted, err := w.Accept(req.RequestID, "g1", "reviewer", true)
	if err != nil {
		t.Fatalf("Accept() returned error: %v", err)
	}
	if accepted.Status != models.PartnerAccepted {
		t.Errorf("Status = %v, want accepted", accepted.Status)
	}
}

func TestRejectFlipsStatusOnce(t *testing.T) {
	store := newFakeRequestStore()
	notifier := &fakePartnerNotifier{}
	w := newWorkflowAt(store, &fakeProvisioner{}, notifier, 1700000000000)
	req := submitPending(t, w)

	rejected, err := w.Reject(req.RequestID, "reviewer")
	if err != nil {
		t.Fatalf("Reject() returned error: %v", err)
	}
	if rejected.Status != models.PartnerRejected {
		t.Errorf("Status = %v, want rejected", rejected.Status)
	}
	if rejected.ChannelID != "" || rejected.RoleID != "" {
		t.Error("rejection must not set provisioning ids")
	}

	// The decision is final in both directions.
	if _, err := w.Reject(req.RequestID, "reviewer"); !errors.Is(err, models.ErrAlreadyReviewed) {
		t.Errorf("second Reject() err = %v, want ErrAlreadyReviewed", err)
	}
	if _, err := w.Accept(req.RequestID, "g1", "reviewer", true); !errors.Is(err, models.ErrAlreadyReviewed) {
		t.Errorf("Accept() after reject err = %v, want ErrAlreadyReviewed", err)
	}
}
