package domain

// Identity is the resolved actor behind a request: either Anonymous or the
// authenticated user. The user is re-read from the store on every request,
// so role and status changes take effect on the next request.
type Identity struct {
	user *User
}

// Anonymous is the identity of an unauthenticated request.
func Anonymous() Identity {
	return Identity{}
}

// Authenticated wraps a freshly loaded user into an identity.
func Authenticated(u *User) Identity {
	return Identity{user: u}
}

// IsAuthenticated reports whether the identity carries a user.
func (i Identity) IsAuthenticated() bool {
	return i.user != nil
}

// User returns the authenticated user, or nil for Anonymous.
func (i Identity) User() *User {
	return i.user
}

// HasRole reports whether the identity is authenticated and its role is a
// member of the given set. An empty set means "no restriction" and is
// satisfied by any identity, anonymous included.
func (i Identity) HasRole(roles ...Role) bool {
	if len(roles) == 0 {
		return true
	}
	if i.user == nil {
		return false
	}
	for _, r := range roles {
		if i.user.Role == r {
			return true
		}
	}
	return false
}
