package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestAdminList_OwnerAndConfigured(t *testing.T) {
	a := NewAdminList("owner", []string{"mod1", "mod2", ""})

	if !a.IsAdmin("owner") {
		t.Fatal("owner should be admin")
	}
	if !a.IsAdmin("mod1") || !a.IsAdmin("mod2") {
		t.Fatal("configured IDs should be admin")
	}
	if a.IsAdmin("") {
		t.Fatal("empty ID must never be admin")
	}
	if a.IsAdmin("random") {
		t.Fatal("unknown user should not be admin")
	}
}

func TestAdminList_GuildAdministratorPermission(t *testing.T) {
	a := NewAdminList("", nil)

	member := &discordgo.Member{
		User:        &discordgo.User{ID: "u1"},
		Permissions: discordgo.PermissionAdministrator,
	}
	i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{Member: member}}
	if !a.Check(i) {
		t.Fatal("guild administrator should pass")
	}

	member.Permissions = 0
	if a.Check(i) {
		t.Fatal("plain member should not pass")
	}
}

func TestAdminList_DMUsesConfiguredIDs(t *testing.T) {
	a := NewAdminList("owner", nil)

	i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		User: &discordgo.User{ID: "owner"},
	}}
	if !a.Check(i) {
		t.Fatal("owner in DM should pass")
	}

	i.User = &discordgo.User{ID: "stranger"}
	if a.Check(i) {
		t.Fatal("stranger in DM should not pass")
	}
}
