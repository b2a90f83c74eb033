package domain

// Identity is the requesting principal: anonymous, a signed-in user, or an
// administrator. The zero value is anonymous.
type Identity struct {
	Email string
	Role  UserRole
}

// Anonymous returns the unauthenticated identity.
func Anonymous() Identity { return Identity{} }

// SignedIn reports whether the identity belongs to an authenticated user.
func (i Identity) SignedIn() bool { return i.Email != "" }

// Admin reports whether the identity has administrator privileges.
func (i Identity) Admin() bool { return i.Role == RoleAdmin }

// Groups returns the access groups the identity belongs to.
func (i Identity) Groups() []string {
	groups := []string{GroupPublic}
	if i.SignedIn() {
		groups = append(groups, GroupRegistered)
	}
	if i.Admin() {
		groups = append(groups, GroupAdmin)
	}
	return groups
}

// Ability evaluates document visibility for one identity. Membership of a
// work in a collection never grants visibility on its own.
type Ability struct {
	identity Identity
}

// NewAbility creates an Ability for the given identity.
func NewAbility(identity Identity) Ability {
	return Ability{identity: identity}
}

// Identity returns the identity this ability evaluates for.
func (a Ability) Identity() Identity { return a.identity }

// CanReadCollection decides whether the collection document is visible.
func (a Ability) CanReadCollection(doc *CollectionDoc) bool {
	return a.canRead(doc.Visibility, doc.ReadUsers, doc.ReadGroups)
}

// CanReadWork decides whether the work document is visible.
func (a Ability) CanReadWork(doc *WorkDoc) bool {
	return a.canRead(doc.Visibility, doc.ReadUsers, doc.ReadGroups)
}

func (a Ability) canRead(visibility Visibility, readUsers, readGroups []string) bool {
	if a.identity.Admin() {
		return true
	}
	switch visibility {
	case VisibilityOpen:
		return true
	case VisibilityAuthenticated:
		return a.identity.SignedIn()
	}
	// Restricted: only explicit grants apply.
	if a.identity.SignedIn() {
		for _, u := range readUsers {
			if u == a.identity.Email {
				return true
			}
		}
	}
	for _, g := range readGroups {
		for _, have := range a.identity.Groups() {
			if g == have {
				return true
			}
		}
	}
	return false
}

// VisibilityFilter is the identity's visibility constraint in a form the
// search index can interpret. Built once per request by the query builders.
type VisibilityFilter struct {
	// Admin bypasses all visibility filtering.
	Admin bool
	// Registered marks a signed-in requester (sees "authenticated" documents).
	Registered bool
	// Email matches per-user read grants; empty for anonymous requesters.
	Email string
	// Groups matches group read grants.
	Groups []string
}

// Filter derives the index-side visibility filter for this ability.
func (a Ability) Filter() VisibilityFilter {
	return VisibilityFilter{
		Admin:      a.identity.Admin(),
		Registered: a.identity.SignedIn(),
		Email:      a.identity.Email,
		Groups:     a.identity.Groups(),
	}
}
