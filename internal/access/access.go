// Package access maps roles to the operations they may perform. The
// grants table is the single place role checks are defined, so a
// typo'd role string cannot silently widen or narrow a permission.
package access

import "github.com/shantnusharma/storyboard/internal/models"

type Capability string

const (
	CapDeleteStory    Capability = "story:delete"
	CapManageProjects Capability = "projects:manage"
	CapManageSprints  Capability = "sprints:manage"
	CapListUsers      Capability = "users:list"
)

// grants lists, per role, every capability beyond plain authenticated
// access. Story create/update and comment create need no entry: any
// authenticated user may perform them.
var grants = map[models.Role][]Capability{
	models.RoleAdmin: {
		CapDeleteStory,
		CapManageProjects,
		CapManageSprints,
		CapListUsers,
	},
	models.RoleTeamLead: {
		CapDeleteStory,
		CapManageProjects,
		CapManageSprints,
	},
	models.RoleUser: {},
}

// Allows reports whether the role is granted the capability.
func Allows(role models.Role, capability Capability) bool {
	for _, granted := range grants[role] {
		if granted == capability {
			return true
		}
	}
	return false
}
