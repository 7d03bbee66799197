// Package service defines domain service interfaces implemented by the
// infrastructure layer.
package service

// PasswordHasher abstracts password hashing so use cases never touch the
// hashing primitive directly.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a stored hash in constant work.
	Check(password, hash string) bool
}
