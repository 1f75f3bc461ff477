// Package rbac answers "can this role do X" for every protected surface.
// The role→permission table is static: each role's set is enumerated in full,
// with no inheritance between roles.
package rbac

import (
	"github.com/rag-admin/rag-admin/internal/auth"
	"github.com/rag-admin/rag-admin/internal/shared"
)

// rolePermissions is the closed role→permission table. Admin's set is kept a
// superset of editor's, and editor's of viewer's, by convention; the tests
// enforce the chain.
var rolePermissions = map[auth.Role][]string{
	auth.RoleAdmin: {
		shared.PermPromptsRead,
		shared.PermPromptsWrite,
		shared.PermPromptsDelete,
		shared.PermOfficialsRead,
		shared.PermOfficialsWrite,
		shared.PermOfficialsDelete,
		shared.PermOfficialsSync,
		shared.PermKnowledgeRead,
		shared.PermKnowledgeWrite,
		shared.PermKnowledgeDelete,
		shared.PermAuditRead,
		shared.PermUsersRead,
		shared.PermUsersWrite,
	},
	auth.RoleEditor: {
		shared.PermPromptsRead,
		shared.PermPromptsWrite,
		shared.PermOfficialsRead,
		shared.PermKnowledgeRead,
		shared.PermKnowledgeWrite,
		shared.PermAuditRead,
	},
	auth.RoleViewer: {
		shared.PermPromptsRead,
		shared.PermOfficialsRead,
		shared.PermKnowledgeRead,
		shared.PermAuditRead,
	},
}

// HasPermission reports whether the role grants the permission. A role
// absent from the table grants nothing.
func HasPermission(role auth.Role, permission string) bool {
	for _, p := range rolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// HasRole reports whether the identity holds one of the required roles.
func HasRole(ident *auth.Identity, roles ...auth.Role) bool {
	if ident == nil {
		return false
	}
	for _, r := range roles {
		if ident.Role == r {
			return true
		}
	}
	return false
}

// PermissionsFor returns a copy of the role's granted set.
func PermissionsFor(role auth.Role) []string {
	perms := rolePermissions[role]
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}
