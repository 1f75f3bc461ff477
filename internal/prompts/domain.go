package prompts

import "time"

// Status is the publication state of a prompt template.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Variable describes a placeholder within a prompt template.
type Variable struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
}

// Prompt is a versioned prompt template.
type Prompt struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Variables []Variable `json:"variables,omitempty"`
	Category  string     `json:"category"`
	Tags      []string   `json:"tags,omitempty"`
	Version   int        `json:"version"`
	Status    Status     `json:"status"`
	AuthorID  string     `json:"author_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ListFilter narrows a prompt listing.
type ListFilter struct {
	Page     int
	PerPage  int
	Category string
	Status   Status
	Search   string
}
