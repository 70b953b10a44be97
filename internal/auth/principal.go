package auth

// Principal is the authenticated account a request acts as.
type Principal struct {
	ID       int
	Username string
}

// IsZero reports whether no account is attached.
func (p Principal) IsZero() bool {
	return p.ID == 0
}
