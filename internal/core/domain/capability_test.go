package domain

import "testing"

func TestCapabilityTiersAreStrictSupersets(t *testing.T) {
	tester := RoleTester.Capabilities()
	junior := RoleJuniorDeveloper.Capabilities()
	senior := RoleSeniorDeveloper.Capabilities()

	for c := range tester {
		if !junior.Grants(c) {
			t.Errorf("junior lost tester capability %q", c)
		}
	}
	for c := range junior {
		if !senior.Grants(c) {
			t.Errorf("senior lost junior capability %q", c)
		}
	}
	if len(junior) <= len(tester) {
		t.Error("junior tier should add capabilities over tester")
	}
	if len(senior) <= len(junior) {
		t.Error("senior tier should add capabilities over junior")
	}
}

func TestManagerTierIsDisjointFromDeveloperTiers(t *testing.T) {
	manager := RoleManager.Capabilities()
	senior := RoleSeniorDeveloper.Capabilities()

	for c := range manager {
		if c == CapChangeOwnPassword {
			continue
		}
		if senior.Grants(c) {
			t.Errorf("capability %q granted to both manager and senior", c)
		}
	}
	if !manager.Grants(CapChangeOwnPassword) {
		t.Error("manager should be able to change own password")
	}
	if manager.Grants(CapListContacts) {
		t.Error("manager should not see contact operations")
	}
	if senior.Grants(CapAddUser) {
		t.Error("senior should not see user administration")
	}
}

func TestRoleCapabilities(t *testing.T) {
	tests := []struct {
		role    Role
		grants  []Capability
		denies  []Capability
	}{
		{
			role:   RoleTester,
			grants: []Capability{CapListContacts, CapSearchContacts, CapSortContacts, CapChangeOwnPassword},
			denies: []Capability{CapUpdateContact, CapAddContact, CapDeleteContact, CapListUsers},
		},
		{
			role:   RoleJuniorDeveloper,
			grants: []Capability{CapListContacts, CapUpdateContact, CapUndoContactUpdate},
			denies: []Capability{CapAddContact, CapDeleteContact, CapUndoContactDelete, CapAddUser},
		},
		{
			role:   RoleSeniorDeveloper,
			grants: []Capability{CapUpdateContact, CapAddContact, CapDeleteContact, CapUndoContactDelete},
			denies: []Capability{CapListUsers, CapDeleteUser, CapViewContactStats},
		},
		{
			role:   RoleManager,
			grants: []Capability{CapListUsers, CapAddUser, CapUpdateUser, CapDeleteUser, CapUndoUserDelete, CapViewContactStats},
			denies: []Capability{CapListContacts, CapUpdateContact, CapDeleteContact},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			caps := tt.role.Capabilities()
			for _, c := range tt.grants {
				if !caps.Grants(c) {
					t.Errorf("%s should grant %q", tt.role, c)
				}
			}
			for _, c := range tt.denies {
				if caps.Grants(c) {
					t.Errorf("%s should not grant %q", tt.role, c)
				}
			}
		})
	}
}

func TestUnknownRoleGrantsNothing(t *testing.T) {
	if got := Role("Intern").Capabilities(); len(got) != 0 {
		t.Errorf("unknown role granted %d capabilities", len(got))
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"Tester", RoleTester, false},
		{"Junior Developer", RoleJuniorDeveloper, false},
		{"Senior Developer", RoleSeniorDeveloper, false},
		{"Manager", RoleManager, false},
		{"  Manager  ", RoleManager, false},
		{"manager", "", true},
		{"Developer", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseRole(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseRole(%q) expected error, got %q", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRole(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRole(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
