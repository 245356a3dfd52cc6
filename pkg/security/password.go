package security

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"fmt"
)

// saltLen matches the key length HMAC-SHA512 uses natively, keeping stored
// credentials portable with data written by the original deployment.
const saltLen = 64

// HashPassword derives a fresh random salt and the HMAC-SHA512 keyed hash of
// the password. Hash and salt are always produced together.
func HashPassword(password string) (hash, salt []byte, err error) {
	if password == "" {
		return nil, nil, fmt.Errorf("password cannot be empty")
	}

	salt = make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("generate salt: %w", err)
	}

	return computeHash(password, salt), salt, nil
}

// VerifyPassword recomputes the keyed hash with the stored salt and compares
// it against the stored hash in constant time.
func VerifyPassword(password string, hash, salt []byte) bool {
	if len(hash) == 0 || len(salt) == 0 {
		return false
	}
	computed := computeHash(password, salt)
	return subtle.ConstantTimeCompare(hash, computed) == 1
}

func computeHash(password string, salt []byte) []byte {
	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte(password))
	return mac.Sum(nil)
}
