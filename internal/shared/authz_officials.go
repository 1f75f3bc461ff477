package shared

// Official-personnel permissions declared for RBAC. Sync is the only
// resource-specific verb in the vocabulary.
const (
	PermOfficialsRead   = "officials:read"
	PermOfficialsWrite  = "officials:write"
	PermOfficialsDelete = "officials:delete"
	PermOfficialsSync   = "officials:sync"
)

// OfficialScopes lists all permissions related to the officials module.
func OfficialScopes() []string {
	return []string{
		PermOfficialsRead,
		PermOfficialsWrite,
		PermOfficialsDelete,
		PermOfficialsSync,
	}
}
