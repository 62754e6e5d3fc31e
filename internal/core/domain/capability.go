package domain

// Capability tags one operation reachable from a session menu. A session
// dispatches a menu selection by checking the tag against the principal's
// resolved capability set rather than by role comparisons at each call site.
type Capability string

const (
	CapChangeOwnPassword Capability = "change-own-password"
	CapListContacts      Capability = "list-contacts"
	CapSearchContacts    Capability = "search-contacts"
	CapSortContacts      Capability = "sort-contacts"
	CapUpdateContact     Capability = "update-contact"
	CapUndoContactUpdate Capability = "undo-contact-update"
	CapAddContact        Capability = "add-contact"
	CapDeleteContact     Capability = "delete-contact"
	CapUndoContactDelete Capability = "undo-contact-delete"
	CapListUsers         Capability = "list-users"
	CapAddUser           Capability = "add-user"
	CapUpdateUser        Capability = "update-user"
	CapDeleteUser        Capability = "delete-user"
	CapUndoUserDelete    Capability = "undo-user-delete"
	CapViewContactStats  Capability = "view-contact-stats"
)

// CapabilitySet is the bundle of operations a role grants.
type CapabilitySet map[Capability]struct{}

// NewCapabilitySet builds a set from the given tags.
func NewCapabilitySet(caps ...Capability) CapabilitySet {
	s := make(CapabilitySet, len(caps))
	for _, c := range caps {
		s[c] = struct{}{}
	}
	return s
}

// Grants reports whether the set contains the capability.
func (s CapabilitySet) Grants(c Capability) bool {
	_, ok := s[c]
	return ok
}

// Union returns a new set containing every capability of s and other.
func (s CapabilitySet) Union(other CapabilitySet) CapabilitySet {
	out := make(CapabilitySet, len(s)+len(other))
	for c := range s {
		out[c] = struct{}{}
	}
	for c := range other {
		out[c] = struct{}{}
	}
	return out
}

// Higher developer tiers are computed as the union of the tier below plus
// their own additions, so the superset relation holds by construction.
var (
	testerCaps = NewCapabilitySet(
		CapChangeOwnPassword,
		CapListContacts,
		CapSearchContacts,
		CapSortContacts,
	)
	juniorCaps = testerCaps.Union(NewCapabilitySet(
		CapUpdateContact,
		CapUndoContactUpdate,
	))
	seniorCaps = juniorCaps.Union(NewCapabilitySet(
		CapAddContact,
		CapDeleteContact,
		CapUndoContactDelete,
	))
	managerCaps = NewCapabilitySet(
		CapChangeOwnPassword,
		CapListUsers,
		CapAddUser,
		CapUpdateUser,
		CapDeleteUser,
		CapUndoUserDelete,
		CapViewContactStats,
	)
)

// Capabilities resolves the operation set granted by the role. Unknown roles
// grant nothing.
func (r Role) Capabilities() CapabilitySet {
	switch r {
	case RoleTester:
		return testerCaps
	case RoleJuniorDeveloper:
		return juniorCaps
	case RoleSeniorDeveloper:
		return seniorCaps
	case RoleManager:
		return managerCaps
	}
	return NewCapabilitySet()
}
