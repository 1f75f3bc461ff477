package rbac

import (
	"strings"

	"github.com/rag-admin/rag-admin/internal/auth"
)

// State is the outcome of an access decision for a protected surface.
type State int

const (
	// StateRestoring means the session is still being restored; the surface
	// shows a transient verifying indicator, never the denied view.
	StateRestoring State = iota
	// StateUnauthenticated means no identity is present; the surface
	// redirects to the login entry point.
	StateUnauthenticated
	// StateDenied means an identity is present but lacks the requirement.
	// Terminal until the session changes.
	StateDenied
	// StateAllowed means the requirement is satisfied.
	StateAllowed
)

// String returns the state name for logs and tests.
func (s State) String() string {
	switch s {
	case StateRestoring:
		return "restoring"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateDenied:
		return "denied"
	case StateAllowed:
		return "allowed"
	}
	return "unknown"
}

// Requirement names what a protected surface demands. When both roles and a
// permission are set, both must pass.
type Requirement struct {
	Roles      []auth.Role
	Permission string
}

// Access is a resolved decision. Missing names the failed requirement when
// the state is StateDenied, for diagnosability.
type Access struct {
	State   State
	Missing string
}

// Decide resolves the access state for an identity against a requirement.
// It is a pure function: rendering concerns stay entirely with the caller.
func Decide(ident *auth.Identity, restoring bool, req Requirement) Access {
	if restoring {
		return Access{State: StateRestoring}
	}
	if ident == nil {
		return Access{State: StateUnauthenticated}
	}
	if len(req.Roles) > 0 && !HasRole(ident, req.Roles...) {
		return Access{State: StateDenied, Missing: "role " + joinRoles(req.Roles)}
	}
	if req.Permission != "" && !HasPermission(ident.Role, req.Permission) {
		return Access{State: StateDenied, Missing: req.Permission}
	}
	return Access{State: StateAllowed}
}

func joinRoles(roles []auth.Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, " or ")
}
