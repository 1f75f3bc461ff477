package shared

// Prompt template permissions declared for RBAC.
const (
	PermPromptsRead   = "prompts:read"
	PermPromptsWrite  = "prompts:write"
	PermPromptsDelete = "prompts:delete"
)

// PromptScopes lists all permissions related to prompt templates.
func PromptScopes() []string {
	return []string{
		PermPromptsRead,
		PermPromptsWrite,
		PermPromptsDelete,
	}
}
