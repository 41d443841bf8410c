package domain

// Identity is the session identity the cart operates under. The zero value
// is anonymous; identity is always passed explicitly, never read from an
// ambient global.
type Identity struct {
	UserRef string
}

func Anonymous() Identity {
	return Identity{}
}

func Authenticated(userRef string) Identity {
	return Identity{UserRef: userRef}
}

func (i Identity) IsAuthenticated() bool {
	return i.UserRef != ""
}
