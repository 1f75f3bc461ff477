package prompts

import (
	"reflect"
	"time"
)

// Change records one field-level difference between two prompt versions.
type Change struct {
	Field      string `json:"field"`
	OldValue   any    `json:"old_value,omitempty"`
	NewValue   any    `json:"new_value,omitempty"`
	ChangeType string `json:"change_type"`
}

// Version is a point-in-time snapshot of a prompt. A record is cut when a
// prompt is created, published, or rolled back; draft edits in between do not
// produce one.
type Version struct {
	ID           string     `json:"id"`
	PromptID     string     `json:"prompt_id"`
	Version      int        `json:"version"`
	Changes      []Change   `json:"changes,omitempty"`
	Snapshot     Prompt     `json:"snapshot"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	PublishedBy  string     `json:"published_by,omitempty"`
	RollbackFrom int        `json:"rollback_from,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// diffPrompts lists the content fields that differ between two snapshots.
func diffPrompts(old, next Prompt) []Change {
	var changes []Change
	add := func(field string, oldValue, newValue any) {
		if !reflect.DeepEqual(oldValue, newValue) {
			changes = append(changes, Change{Field: field, OldValue: oldValue, NewValue: newValue, ChangeType: "update"})
		}
	}
	add("title", old.Title, next.Title)
	add("content", old.Content, next.Content)
	add("category", old.Category, next.Category)
	add("status", string(old.Status), string(next.Status))
	add("tags", old.Tags, next.Tags)
	add("variables", old.Variables, next.Variables)
	return changes
}
