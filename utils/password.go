package utils

import "golang.org/x/crypto/bcrypt"

const (
	MinPasswordLength = 8
	// bcrypt refuses longer inputs.
	MaxPasswordBytes = 72
)

// ValidPasswordLength reports whether password can be hashed and meets the
// minimum length.
func ValidPasswordLength(password string) bool {
	return len(password) >= MinPasswordLength && len(password) <= MaxPasswordBytes
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPassword(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// VerifyPassword reports whether password matches hash. Malformed hashes
// simply fail to match.
func VerifyPassword(password, hash string) bool {
	return CheckPassword(hash, password) == nil
}
