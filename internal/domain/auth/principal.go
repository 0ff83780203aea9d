package auth

// Principal is the already-resolved caller identity handed to usecases.
// The zero value is an anonymous caller.
type Principal struct {
	Authenticated bool
	LenderID      *uint64
}

func Anonymous() Principal { return Principal{} }

func ForLender(id uint64) Principal {
	return Principal{Authenticated: true, LenderID: &id}
}

// Lender returns the lender id when the principal is authenticated and bound to a lender.
func (p Principal) Lender() (uint64, bool) {
	if !p.Authenticated || p.LenderID == nil || *p.LenderID == 0 {
		return 0, false
	}
	return *p.LenderID, true
}
