package domain

import "testing"

func TestDeriveRole(t *testing.T) {
	cases := []struct {
		username string
		anchor   string
		want     Role
	}{
		{"JunaidRafi", "JunaidRafi", RoleAdmin},
		{"Nova", "JunaidRafi", RolePilot},
		{"junaidrafi", "JunaidRafi", RolePilot},
		{"JunaidRafi ", "JunaidRafi", RolePilot},
		{"", "", RolePilot},
	}
	for _, tc := range cases {
		if got := DeriveRole(tc.username, tc.anchor); got != tc.want {
			t.Errorf("DeriveRole(%q, %q) = %s, want %s", tc.username, tc.anchor, got, tc.want)
		}
	}
}

func TestRoleValid(t *testing.T) {
	if !RolePilot.Valid() || !RoleAdmin.Valid() {
		t.Fatal("known roles must be valid")
	}
	if Role("client").Valid() {
		t.Fatal("unknown role reported valid")
	}
}

func TestActor(t *testing.T) {
	if !(Actor{}).Anonymous() {
		t.Fatal("zero actor must be anonymous")
	}
	a := Actor{Username: "JunaidRafi", Role: RoleAdmin}
	if a.Anonymous() || !a.IsAdmin() {
		t.Fatalf("unexpected actor flags: %+v", a)
	}
}
