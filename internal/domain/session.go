package domain

// Principal is the capability set the session layer needs from a logged-in
// user. Kept separate so User stays free of session-framework coupling.
type Principal interface {
	ID() string
	IsAuthenticated() bool
}

// SessionUser adapts an account to the Principal interface.
type SessionUser struct {
	Email     Email
	Confirmed bool
}

func (u SessionUser) ID() string { return u.Email }

func (u SessionUser) IsAuthenticated() bool { return true }
