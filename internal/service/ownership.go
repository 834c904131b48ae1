package service

// OwnershipGuard decides whether one identity may view another's profile.
// It is the single decision point for read access, so richer policies (roles,
// admin override) can replace it without touching the account service.
type OwnershipGuard interface {
	CanView(requestedUsername, callerUsername string) bool
}

type selfOnlyGuard struct{}

// NewSelfOnlyGuard returns the current policy: an account may view only its
// own profile. Both usernames are expected pre-normalized.
func NewSelfOnlyGuard() OwnershipGuard {
	return selfOnlyGuard{}
}

func (selfOnlyGuard) CanView(requestedUsername, callerUsername string) bool {
	return requestedUsername != "" && requestedUsername == callerUsername
}
