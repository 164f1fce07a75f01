package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword derives the bcrypt digest stored on the user row at
// registration.  The cost comes from BCRYPT_COST so tests can run with a
// cheap factor while production keeps a slow one.
func HashPassword(plain string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks a login attempt against the stored digest.  Any
// failure, malformed digest included, reads as a plain mismatch.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
