package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a salted one-way digest. bcrypt generates a fresh
// salt per call and embeds it in the digest, so verification needs no
// separate salt storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches digest. The comparison is
// constant-time; a malformed digest yields false, never a panic.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
