package access

import (
	"testing"

	"github.com/shantnusharma/storyboard/internal/models"
)

func TestAllows(t *testing.T) {
	tests := []struct {
		name       string
		role       models.Role
		capability Capability
		want       bool
	}{
		{name: "admin deletes stories", role: models.RoleAdmin, capability: CapDeleteStory, want: true},
		{name: "admin lists users", role: models.RoleAdmin, capability: CapListUsers, want: true},
		{name: "team lead deletes stories", role: models.RoleTeamLead, capability: CapDeleteStory, want: true},
		{name: "team lead manages projects", role: models.RoleTeamLead, capability: CapManageProjects, want: true},
		{name: "team lead manages sprints", role: models.RoleTeamLead, capability: CapManageSprints, want: true},
		{name: "team lead cannot list users", role: models.RoleTeamLead, capability: CapListUsers, want: false},
		{name: "user cannot delete stories", role: models.RoleUser, capability: CapDeleteStory, want: false},
		{name: "user cannot manage projects", role: models.RoleUser, capability: CapManageProjects, want: false},
		{name: "user cannot list users", role: models.RoleUser, capability: CapListUsers, want: false},
		{name: "unknown role has nothing", role: models.Role("Superuser"), capability: CapDeleteStory, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Allows(tt.role, tt.capability); got != tt.want {
				t.Errorf("Allows(%q, %q) = %v, want %v", tt.role, tt.capability, got, tt.want)
			}
		})
	}
}
