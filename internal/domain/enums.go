package domain

// Visibility is the access tier on a collection or work.
type Visibility string

const (
	VisibilityOpen          Visibility = "open"
	VisibilityAuthenticated Visibility = "authenticated"
	VisibilityRestricted    Visibility = "restricted"
)

// ValidVisibilities enumerates the accepted visibility values.
var ValidVisibilities = map[Visibility]bool{
	VisibilityOpen:          true,
	VisibilityAuthenticated: true,
	VisibilityRestricted:    true,
}

// UserRole defines the role hierarchy within a tenant.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// Access groups used by index documents' read grants. Every requester belongs
// to GroupPublic; signed-in requesters additionally to GroupRegistered.
const (
	GroupPublic     = "public"
	GroupRegistered = "registered"
	GroupAdmin      = "admin"
)

// ParticipantAccess is the access level a user holds on an admin set.
type ParticipantAccess string

const (
	AccessManage  ParticipantAccess = "manage"
	AccessDeposit ParticipantAccess = "deposit"
	AccessView    ParticipantAccess = "view"
)
