package models

import (
	"encoding/json"
	"testing"
)

func TestUserStatus_BidirectionalLookup(t *testing.T) {
	t.Parallel()

	for id, want := range map[int]string{1: "Active", 2: "Locked", 3: "Banned"} {
		s, err := UserStatusFromID(id)
		if err != nil {
			t.Fatalf("UserStatusFromID(%d): %v", id, err)
		}
		if s.String() != want {
			t.Fatalf("UserStatusFromID(%d) = %q, want %q", id, s.String(), want)
		}
		back, err := UserStatusFromName(want)
		if err != nil {
			t.Fatalf("UserStatusFromName(%q): %v", want, err)
		}
		if back != s {
			t.Fatalf("round trip mismatch for %q", want)
		}
	}

	if _, err := UserStatusFromID(0); err == nil {
		t.Fatalf("expected error for unknown user status id")
	}
	if _, err := UserStatusFromName("Parked"); err == nil {
		t.Fatalf("expected error for unknown user status name")
	}
}

func TestTokenStatus_BidirectionalLookup(t *testing.T) {
	t.Parallel()

	for id, want := range map[int]string{1: "Active", 2: "Expired", 3: "Revoked"} {
		s, err := TokenStatusFromID(id)
		if err != nil {
			t.Fatalf("TokenStatusFromID(%d): %v", id, err)
		}
		if s.String() != want {
			t.Fatalf("TokenStatusFromID(%d) = %q, want %q", id, s.String(), want)
		}
		back, err := TokenStatusFromName(want)
		if err != nil {
			t.Fatalf("TokenStatusFromName(%q): %v", want, err)
		}
		if back != s {
			t.Fatalf("round trip mismatch for %q", want)
		}
	}

	if _, err := TokenStatusFromID(42); err == nil {
		t.Fatalf("expected error for unknown token status id")
	}
}

func TestTokenStatus_Terminal(t *testing.T) {
	t.Parallel()

	if TokenStatusActive.Terminal() {
		t.Fatalf("Active must not be terminal")
	}
	if !TokenStatusExpired.Terminal() || !TokenStatusRevoked.Terminal() {
		t.Fatalf("Expired and Revoked must be terminal")
	}
}

func TestRole_TableAndJSON(t *testing.T) {
	t.Parallel()

	r, err := RoleFromID(1)
	if err != nil {
		t.Fatalf("RoleFromID(1): %v", err)
	}
	if r != RoleAdmin || r.String() != "Admin" || r.Precedence() != 5 {
		t.Fatalf("unexpected admin role: %v %q %d", r, r.String(), r.Precedence())
	}
	if r.Description() == "" {
		t.Fatalf("expected non-empty description")
	}

	b, err := json.Marshal([]Role{RoleAdmin, RolePremium})
	if err != nil {
		t.Fatalf("marshal roles: %v", err)
	}
	if string(b) != `["Admin","Premium"]` {
		t.Fatalf("unexpected role JSON: %s", b)
	}

	var back []Role
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal roles: %v", err)
	}
	if len(back) != 2 || back[0] != RoleAdmin || back[1] != RolePremium {
		t.Fatalf("unexpected roles after round trip: %v", back)
	}

	if err := json.Unmarshal([]byte(`["Wizard"]`), &back); err == nil {
		t.Fatalf("expected error for unknown role name")
	}
}

func TestRoleNames_RoundTrip(t *testing.T) {
	t.Parallel()

	names := RoleNames([]Role{RoleEmployee, RoleAdmin})
	if len(names) != 2 || names[0] != "Employee" || names[1] != "Admin" {
		t.Fatalf("unexpected names: %v", names)
	}

	roles, err := RolesFromNames(names)
	if err != nil {
		t.Fatalf("RolesFromNames: %v", err)
	}
	if len(roles) != 2 || roles[0] != RoleEmployee || roles[1] != RoleAdmin {
		t.Fatalf("unexpected roles: %v", roles)
	}

	if _, err := RolesFromNames([]string{"Admin", "Nope"}); err == nil {
		t.Fatalf("expected error for unknown name")
	}
}
