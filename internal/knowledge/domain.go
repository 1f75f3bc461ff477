package knowledge

import "time"

// ItemType classifies a knowledge base entry.
type ItemType string

const (
	TypeSensitive   ItemType = "sensitive"
	TypeCommonError ItemType = "common_error"
	TypeFAQ         ItemType = "faq"
	TypeGuideline   ItemType = "guideline"
)

// Valid reports whether t is a known item type.
func (t ItemType) Valid() bool {
	switch t {
	case TypeSensitive, TypeCommonError, TypeFAQ, TypeGuideline:
		return true
	}
	return false
}

// Severity ranks how carefully an entry must be handled.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityRank = map[Severity]int{
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// Rank returns the ordering weight of the severity; unknown values rank lowest.
func (s Severity) Rank() int {
	return severityRank[s]
}

// Item is a curated knowledge base entry consulted during retrieval.
type Item struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Type      ItemType  `json:"type"`
	Keywords  []string  `json:"keywords,omitempty"`
	Category  string    `json:"category"`
	Severity  Severity  `json:"severity"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListFilter narrows a knowledge listing.
type ListFilter struct {
	Page     int
	PerPage  int
	Type     ItemType
	Category string
	Active   *bool
	Search   string
}
