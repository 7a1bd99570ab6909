package ports

// PasswordHasher abstracts one-way password hashing so the auth flow never
// touches the underlying algorithm directly.
type PasswordHasher interface {
	// Hash produces a salted digest. Two calls with the same input yield
	// different digests.
	Hash(password string) (string, error)
	// Check reports whether password produced digest. A malformed digest
	// returns false, never an error.
	Check(password, digest string) bool
}
