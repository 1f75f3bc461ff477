package rbac

import (
	"testing"

	"github.com/rag-admin/rag-admin/internal/auth"
	"github.com/rag-admin/rag-admin/internal/shared"
	_ "github.com/rag-admin/rag-admin/testing"
)

func TestPermissionTable(t *testing.T) {
	cases := []struct {
		role auth.Role
		perm string
		want bool
	}{
		{auth.RoleAdmin, shared.PermOfficialsSync, true},
		{auth.RoleAdmin, shared.PermUsersWrite, true},
		{auth.RoleEditor, shared.PermPromptsWrite, true},
		{auth.RoleEditor, shared.PermPromptsDelete, false},
		{auth.RoleEditor, shared.PermOfficialsSync, false},
		{auth.RoleViewer, shared.PermPromptsRead, true},
		{auth.RoleViewer, shared.PermPromptsWrite, false},
		{auth.RoleViewer, shared.PermOfficialsSync, false},
		{auth.Role("ghost"), shared.PermPromptsRead, false},
	}
	for _, tc := range cases {
		if got := HasPermission(tc.role, tc.perm); got != tc.want {
			t.Errorf("HasPermission(%s, %s) = %v, want %v", tc.role, tc.perm, got, tc.want)
		}
	}
}

func TestPermissionTableIsDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		if !HasPermission(auth.RoleAdmin, shared.PermOfficialsSync) {
			t.Fatalf("repeated evaluation changed the answer")
		}
	}
}

func TestRoleSupersetChain(t *testing.T) {
	for _, perm := range PermissionsFor(auth.RoleViewer) {
		if !HasPermission(auth.RoleEditor, perm) {
			t.Errorf("viewer permission %s missing from editor set", perm)
		}
	}
	for _, perm := range PermissionsFor(auth.RoleEditor) {
		if !HasPermission(auth.RoleAdmin, perm) {
			t.Errorf("editor permission %s missing from admin set", perm)
		}
	}
}

func TestHasRole(t *testing.T) {
	admin := &auth.Identity{ID: "1", Role: auth.RoleAdmin}
	if !HasRole(admin, auth.RoleAdmin, auth.RoleEditor) {
		t.Fatalf("expected admin to match role list")
	}
	if HasRole(admin, auth.RoleViewer) {
		t.Fatalf("did not expect admin to match viewer")
	}
	if HasRole(nil, auth.RoleAdmin) {
		t.Fatalf("nil identity holds no roles")
	}
}

func TestPermissionsForReturnsCopy(t *testing.T) {
	perms := PermissionsFor(auth.RoleViewer)
	if len(perms) == 0 {
		t.Fatalf("expected viewer permissions")
	}
	perms[0] = "mutated"
	if HasPermission(auth.RoleViewer, "mutated") {
		t.Fatalf("mutating the returned slice must not affect the table")
	}
}
