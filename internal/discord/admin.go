package discord

import "github.com/bwmarrin/discordgo"

// AdminList resolves the yes/no admin predicate from the bot owner, the
// configured admin IDs and, inside a guild, the Administrator permission.
type AdminList struct {
	ownerID string
	ids     map[string]struct{}
}

// NewAdminList builds the predicate from config values.
func NewAdminList(ownerID string, adminIDs []string) AdminList {
	ids := make(map[string]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		if id != "" {
			ids[id] = struct{}{}
		}
	}
	return AdminList{ownerID: ownerID, ids: ids}
}

// IsAdmin reports whether the user ID is the owner or a configured admin.
func (a AdminList) IsAdmin(userID string) bool {
	if a.ownerID != "" && userID == a.ownerID {
		return true
	}
	_, ok := a.ids[userID]
	return ok
}

// Check extends IsAdmin with the guild Administrator permission of the
// interaction's member, when there is one.
func (a AdminList) Check(i *discordgo.InteractionCreate) bool {
	user := interactionUser(i)
	if user == nil {
		return false
	}
	if a.IsAdmin(user.ID) {
		return true
	}
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionAdministrator != 0
}

// interactionUser returns the invoking user for both guild and DM
// interactions.
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}
