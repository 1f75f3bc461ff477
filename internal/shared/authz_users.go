package shared

// User management permissions declared for RBAC.
const (
	PermUsersRead  = "users:read"
	PermUsersWrite = "users:write"
)

// UserScopes lists all permissions related to user management.
func UserScopes() []string {
	return []string{
		PermUsersRead,
		PermUsersWrite,
	}
}

// AllScopes returns the full closed permission vocabulary. The set is
// versioned with the application and not configurable at runtime.
func AllScopes() []string {
	var scopes []string
	scopes = append(scopes, PromptScopes()...)
	scopes = append(scopes, OfficialScopes()...)
	scopes = append(scopes, KnowledgeScopes()...)
	scopes = append(scopes, AuditScopes()...)
	scopes = append(scopes, UserScopes()...)
	return scopes
}
