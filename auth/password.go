package auth

import "golang.org/x/crypto/bcrypt"

// HashCost is the bcrypt work factor used for stored passwords.
const HashCost = 10

// HashPassword runs the plaintext through bcrypt with the standard cost.
func HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), HashCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
// bcrypt's comparison is constant-time over the derived key.
func CheckPassword(hashed, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
