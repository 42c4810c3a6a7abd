package policy

import "testing"

func TestCanMutate(t *testing.T) {
	roles := []Role{RoleUser, RoleAdmin}
	ids := []uint{0, 1, 2, 3}

	for _, role := range roles {
		for _, requester := range ids {
			for _, owner := range ids {
				want := role == RoleAdmin || (requester != 0 && requester == owner)
				if got := CanMutate(requester, role, owner); got != want {
					t.Errorf("CanMutate(%d, %q, %d) = %v, want %v", requester, role, owner, got, want)
				}
			}
		}
	}
}

func TestCanMutateOwnerAndStranger(t *testing.T) {
	if !CanMutate(7, RoleUser, 7) {
		t.Error("owner should be allowed")
	}
	if CanMutate(8, RoleUser, 7) {
		t.Error("non-owner user should be denied")
	}
	if !CanMutate(8, RoleAdmin, 7) {
		t.Error("admin should be allowed regardless of ownership")
	}
}

func TestEffectiveRole(t *testing.T) {
	tests := []struct {
		name       string
		username   string
		storedRole string
		want       Role
	}{
		{"stored admin", "alice", "admin", RoleAdmin},
		{"stored admin mixed case", "alice", "Admin", RoleAdmin},
		{"plain user", "bob", "user", RoleUser},
		{"empty role", "carol", "", RoleUser},
		{"unknown role", "dave", "superuser", RoleUser},
		{"legacy admin account", "admin", "user", RoleAdmin},
		{"legacy name in other case", "Admin", "user", RoleUser},
		{"legacy name padded", " ADMIN ", "", RoleUser},
		{"admin-like username", "administrator", "user", RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectiveRole(tt.username, tt.storedRole); got != tt.want {
				t.Errorf("EffectiveRole(%q, %q) = %q, want %q", tt.username, tt.storedRole, got, tt.want)
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	if ParseRole(" admin ") != RoleAdmin {
		t.Error("expected admin")
	}
	if ParseRole("guest") != RoleUser {
		t.Error("unknown roles should fall back to user")
	}
}

func TestIsReservedUsername(t *testing.T) {
	for _, name := range []string{"admin", "Admin", " ADMIN "} {
		if !IsReservedUsername(name) {
			t.Errorf("IsReservedUsername(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"administrator", "admin2", ""} {
		if IsReservedUsername(name) {
			t.Errorf("IsReservedUsername(%q) = true, want false", name)
		}
	}
}
