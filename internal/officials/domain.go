package officials

import "time"

// Official is one entry in the official-personnel list.
type Official struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Position   string     `json:"position"`
	Department string     `json:"department"`
	Level      int        `json:"level"`
	IsActive   bool       `json:"is_active"`
	Source     string     `json:"source"`
	LastSyncAt *time.Time `json:"last_sync_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ListFilter narrows an officials listing.
type ListFilter struct {
	Page       int
	PerPage    int
	Department string
	Level      int
	Search     string
}

// SyncState is the lifecycle of an officials sync run.
type SyncState string

const (
	SyncIdle    SyncState = "idle"
	SyncRunning SyncState = "running"
	SyncOK      SyncState = "ok"
	SyncFailed  SyncState = "failed"
)

// SyncStatus is the externally visible sync record.
type SyncStatus struct {
	State      SyncState  `json:"status"`
	LastSyncAt *time.Time `json:"last_sync_at,omitempty"`
	Added      int        `json:"added,omitempty"`
	Updated    int        `json:"updated,omitempty"`
}

// SyncRequest is the payload carried by a queued sync run.
type SyncRequest struct {
	RequestedBy string `json:"requested_by"`
	Forced      bool   `json:"forced"`
}
