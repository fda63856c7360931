package models

import (
	"strings"
	"testing"
)

func TestPartnerReviewOnce(t *testing.T) {
	req := &PartnerRequest{
		RequestID: "PR-1-1234",
		GuildID:   "guildG",
		UserID:    "userU",
		Status:    PartnerPending,
	}

	if err := req.Review(PartnerAccepted, "reviewer", 100); err != nil {
		t.Fatalf("first Review returned error: %v", err)
	}
	if req.Status != PartnerAccepted || req.ReviewedBy != "reviewer" || req.ReviewedAt != 100 {
		t.Fatalf("review fields not set: %+v", req)
	}

	if err := req.Review(PartnerRejected, "other", 200); err != ErrAlreadyReviewed {
		t.Errorf("second Review = %v, want ErrAlreadyReviewed", err)
	}
	if req.Status != PartnerAccepted || req.ReviewedBy != "reviewer" {
		t.Error("second review mutated the request")
	}
}

func TestPartnerRejectionLeavesProvisioningUnset(t *testing.T) {
	req := &PartnerRequest{RequestID: "PR-1-1234", Status: PartnerPending}

	if err := req.Review(PartnerRejected, "reviewer", 100); err != nil {
		t.Fatalf("Review returned error: %v", err)
	}
	if req.ChannelID != "" || req.RoleID != "" {
		t.Errorf("rejected request carries provisioning ids: channel=%q role=%q", req.ChannelID, req.RoleID)
	}

	if err := req.Review(PartnerAccepted, "reviewer", 200); err != ErrAlreadyReviewed {
		t.Errorf("review after rejection = %v, want ErrAlreadyReviewed", err)
	}
}

func TestNewPartnerRequestID(t *testing.T) {
	id := NewPartnerRequestID("123456789012345678", 1700000000000)
	if id != "PR-1700000000000-5678" {
		t.Errorf("NewPartnerRequestID = %q, want %q", id, "PR-1700000000000-5678")
	}

	// Short user ids are used whole.
	if got := NewPartnerRequestID("42", 5); got != "PR-5-42" {
		t.Errorf("NewPartnerRequestID = %q, want %q", got, "PR-5-42")
	}
}

func TestPartnerChannelName(t *testing.T) {
	if got := PartnerChannelName("My Awesome Server"); got != "☄️-my-awesome-server" {
		t.Errorf("PartnerChannelName = %q, want %q", got, "☄️-my-awesome-server")
	}

	// Punctuation is stripped, hyphens survive.
	if got := PartnerChannelName("Anime-Hub! (Official)"); got != "☄️-anime-hub-official" {
		t.Errorf("PartnerChannelName = %q, want %q", got, "☄️-anime-hub-official")
	}

	// Long names truncate to 50 bytes of the cleaned name.
	long := strings.Repeat("a", 80)
	got := PartnerChannelName(long)
	if want := "☄️-" + strings.Repeat("a", 50); got != want {
		t.Errorf("PartnerChannelName(long) = %q, want %q", got, want)
	}
}
