// Package service declares the domain's stateless collaborators: hashing,
// tokens, identity providers, event publishing and login throttling. The
// implementations live under internal/infra.
package service

// PasswordHasher produces self-describing hashes (salt and cost included), so
// Check needs only the stored value.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Check reports false for a mismatch and for a malformed hash alike.
	Check(password, hash string) bool
}
