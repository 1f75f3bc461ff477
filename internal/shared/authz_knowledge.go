package shared

// Knowledge-base permissions declared for RBAC.
const (
	PermKnowledgeRead   = "knowledge:read"
	PermKnowledgeWrite  = "knowledge:write"
	PermKnowledgeDelete = "knowledge:delete"
)

// KnowledgeScopes lists all permissions related to the knowledge base.
func KnowledgeScopes() []string {
	return []string{
		PermKnowledgeRead,
		PermKnowledgeWrite,
		PermKnowledgeDelete,
	}
}
