package entity

// Credentials binds a unique login and a derived password hash to one user.
// The hash field holds salt followed by the PBKDF2 key; the salt length is
// fixed configuration shared with the hasher. Credentials are written once at
// sign-up and never updated.
type Credentials struct {
	ID           string
	UserID       string
	Login        string
	PasswordHash []byte
}

// ActivationToken is the single-use random identifier gating a user's
// inactive-to-active transition. At most one token exists per user; reissuing
// replaces the previous value.
type ActivationToken struct {
	Token  string
	UserID string
}
