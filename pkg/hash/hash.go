package hash

import "golang.org/x/crypto/bcrypt"

// Cost is the bcrypt work factor used for all credentials.
const Cost = 12

// Password hashes a plaintext password with bcrypt.
func Password(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), Cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether the plaintext matches the stored hash. A mismatch is
// a false return, not an error.
func Verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
