package shared

// Audit trail permissions declared for RBAC.
const (
	PermAuditRead = "audit:read"
)

// AuditScopes lists all permissions related to the audit module.
func AuditScopes() []string {
	return []string{
		PermAuditRead,
	}
}
