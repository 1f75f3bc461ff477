package auth

// Role is one of the closed set of roles understood by the permission table.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// DisplayName returns the human-readable label for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleAdmin:
		return "Administrator"
	case RoleEditor:
		return "Editor"
	case RoleViewer:
		return "Viewer"
	}
	return string(r)
}

// Identity is an authenticated principal's public attributes. It never
// carries a credential secret, in memory or on the wire.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar,omitempty"`
}

// Credential is a directory entry used only during authentication.
type Credential struct {
	Identity
	PasswordHash string
}
