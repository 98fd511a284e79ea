package entities

// Identity is the authenticated caller of an operation. It is passed
// explicitly into every use case call; nothing reads it from ambient state.
type Identity struct {
	UserID string
	Name   string
	Email  string
	Role   Role
}

func (i Identity) IsAuthenticated() bool {
	return i.UserID != ""
}

func (i Identity) IsAdmin() bool {
	return i.IsAuthenticated() && i.Role == RoleAdmin
}

// CanView reports whether the identity may read the claim: owners and admins.
func (i Identity) CanView(c Claim) bool {
	if !i.IsAuthenticated() {
		return false
	}
	return i.IsAdmin() || c.UserID == i.UserID
}
