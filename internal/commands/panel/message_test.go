package panel

import (
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/ValuamorSystems/ValuamorBotGo/pkg/models"
)

func TestBuildEmbedDefaults(t *testing.T) {
	embed := BuildEmbed(&models.Panel{Type: "development"})

	if embed.Title != "Control Panel" {
		t.Errorf("Title = %q, want %q", embed.Title, "Control Panel")
	}
	if embed.Description == "" {
		t.Error("Description should have a fallback")
	}
}

func TestBuildEmbedConfigured(t *testing.T) {
	embed := BuildEmbed(&models.Panel{
		Type:        "development",
		Title:       "My Panel",
		Description: "Custom description",
	})

	if embed.Title != "My Panel" {
		t.Errorf("Title = %q, want %q", embed.Title, "My Panel")
	}
	if embed.Description != "Custom description" {
		t.Errorf("Description = %q, want %q", embed.Description, "Custom description")
	}
}

func TestBuildComponentsCustomIDs(t *testing.T) {
	components := BuildComponents("development2")

	var ids []string
	for _, component := range components {
		row, ok := component.(discordgo.ActionsRow)
		if !ok {
			t.Fatalf("component is %T, want discordgo.ActionsRow", component)
		}
		for _, c := range row.Components {
			button, ok := c.(discordgo.Button)
			if !ok {
				t.Fatalf("row component is %T, want discordgo.Button", c)
			}
			ids = append(ids, button.CustomID)
		}
	}

	want := []string{
		CustomIDRedeem + "development2",
		CustomIDScript + "development2",
		CustomIDRole + "development2",
		CustomIDResetHWID + "development2",
		CustomIDStats + "development2",
	}
	if len(ids) != len(want) {
		t.Fatalf("got %d buttons, want %d", len(ids), len(want))
	}
	for i, id := range ids {
		if id != want[i] {
			t.Errorf("button %d CustomID = %q, want %q", i, id, want[i])
		}
		if !strings.HasPrefix(id, "panel:") {
			t.Errorf("button %d CustomID %q should be in the panel namespace", i, id)
		}
	}
}
