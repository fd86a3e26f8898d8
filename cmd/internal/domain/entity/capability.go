package entity

// Capability is the role a route requires from its caller.
type Capability int

const (
	// CapabilityPublic lets anyone through, a token is resolved opportunistically.
	CapabilityPublic Capability = iota

	// CapabilityAuthenticated requires a token that resolves to a stored user.
	CapabilityAuthenticated

	// CapabilityAdmin requires IsAdmin or IsOwner.
	CapabilityAdmin

	// CapabilityOwner requires IsOwner.
	CapabilityOwner
)

func (c Capability) String() string {
	switch c {
	case CapabilityPublic:
		return "public"
	case CapabilityAuthenticated:
		return "authenticated"
	case CapabilityAdmin:
		return "admin"
	case CapabilityOwner:
		return "owner"
	default:
		return "unknown"
	}
}

// Satisfies reports whether u holds capability c. A nil user only satisfies
// CapabilityPublic.
func (c Capability) Satisfies(u *User) bool {
	switch c {
	case CapabilityPublic:
		return true
	case CapabilityAuthenticated:
		return u != nil
	case CapabilityAdmin:
		return u != nil && (u.IsAdmin || u.IsOwner)
	case CapabilityOwner:
		return u != nil && u.IsOwner
	default:
		return false
	}
}
